package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spigell/ats-questionnaire/internal/questionnaire"
)

type FileConfig struct {
	Dir string `mapstructure:"dir"`
}

// FileStore writes one responses_<id>.json file per candidate.
// Writes are not synchronized: concurrent submissions for the same candidate may interleave.
type FileStore struct {
	dir    string
	create func(name string) (io.WriteCloser, error)
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}

	return &FileStore{dir: dir, create: createFile}
}

// Path returns the file the responses of a candidate are written to.
func (s *FileStore) Path(candidateID int) string {
	return filepath.Join(s.dir, fmt.Sprintf("responses_%d.json", candidateID))
}

func (s *FileStore) Save(_ context.Context, candidateID int, responses questionnaire.Responses) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating responses dir: %w", err)
	}

	file, err := s.create(s.Path(candidateID))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(responses); err != nil {
		_ = file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", s.Path(candidateID), err)
	}

	return nil
}

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}
