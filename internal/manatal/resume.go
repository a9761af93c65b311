package manatal

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	DocumentTypeResume = "resume"
	DocumentTypeOther  = "other"
)

// Document is a file attached to a candidate.
type Document struct {
	Name        string
	ContentType string
	Content     []byte
}

// ResumeUpload is the answer of the resume endpoint.
type ResumeUpload struct {
	ID      int    `json:"id,omitempty" mapstructure:"id"`
	FileURL string `json:"file_url,omitempty" mapstructure:"file_url"`
	URL     string `json:"url,omitempty" mapstructure:"url"`
	// Raw is the full object returned by the API.
	Raw map[string]interface{} `json:"-" mapstructure:"-"`
}

type uploadResumeRequest struct {
	Candidate    int    `json:"candidate"`
	Name         string `json:"name"`
	DocumentType string `json:"document_type"`
	FileContent  string `json:"file_content"`
	FileName     string `json:"file_name"`
	ContentType  string `json:"content_type"`
}

// Link returns the URL of the uploaded file, if the API sent one.
func (r *ResumeUpload) Link() string {
	if r.FileURL != "" {
		return r.FileURL
	}
	return r.URL
}

// DocumentType guesses the document type from the file name.
func DocumentType(name string) string {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "cv") || strings.Contains(lower, "resume") {
		return DocumentTypeResume
	}
	return DocumentTypeOther
}

// UploadResume attaches a base64 encoded document to the candidate.
func (c *Client) UploadResume(ctx context.Context, id int, doc *Document) (*ResumeUpload, error) {
	if doc == nil || len(doc.Content) == 0 {
		return nil, fmt.Errorf("resume for candidate %d is empty", id)
	}

	body := &uploadResumeRequest{
		Candidate:    id,
		Name:         doc.Name,
		DocumentType: DocumentType(doc.Name),
		FileContent:  base64.StdEncoding.EncodeToString(doc.Content),
		FileName:     doc.Name,
		ContentType:  doc.ContentType,
	}

	var raw map[string]interface{}
	if err := c.doJSON(ctx, "upload_resume", http.MethodPost, c.candidateURL(id)+"resume/", body, &raw); err != nil {
		return nil, err
	}

	var upload ResumeUpload
	if err := mapstructure.Decode(raw, &upload); err != nil {
		return nil, fmt.Errorf("decode resume upload: %w", err)
	}
	upload.Raw = raw

	c.logger.Info("resume uploaded",
		zap.Int("candidate_id", id),
		zap.String("file", doc.Name),
		zap.Int("bytes", len(doc.Content)),
	)

	return &upload, nil
}
