package storage

import (
	"context"
	"fmt"

	"github.com/spigell/ats-questionnaire/internal/questionnaire"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Store keeps the raw responses of the latest submission of every candidate.
// Writes overwrite earlier submissions and nothing is read back.
type Store interface {
	Save(ctx context.Context, candidateID int, responses questionnaire.Responses) error
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check verifies that the store is reachable. Stores without a remote backend always pass.
func Check(ctx context.Context, store Store) error {
	pinger, ok := store.(Pinger)
	if !ok {
		return nil
	}

	return pinger.Ping(ctx)
}

type Config struct {
	Backend string       `mapstructure:"backend"`
	File    *FileConfig  `mapstructure:"file"`
	Redis   *RedisConfig `mapstructure:"redis"`
}

// New builds the store selected by cfg.Backend. The returned close function is never nil.
func New(cfg *Config) (Store, func() error, error) {
	noop := func() error { return nil }

	if cfg == nil {
		cfg = &Config{}
	}

	switch cfg.Backend {
	case "", BackendFile:
		fc := cfg.File
		if fc == nil {
			fc = &FileConfig{}
		}
		return NewFileStore(fc.Dir), noop, nil
	case BackendRedis:
		if cfg.Redis == nil || cfg.Redis.Address == "" {
			return nil, noop, fmt.Errorf("storage.redis.address is required for the redis backend")
		}
		store := NewRedisStore(cfg.Redis)
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}
