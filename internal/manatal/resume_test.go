package manatal

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadResume(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 77, "file_url": "https://files.example.com/cv.pdf"}`))
	})

	upload, err := client.UploadResume(context.Background(), 5, &Document{
		Name:        "Jane_CV.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.4"),
	})
	require.NoError(t, err)

	assert.Equal(t, 77, upload.ID)
	assert.Equal(t, "https://files.example.com/cv.pdf", upload.Link())

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/open/v3/candidates/5/resume/", req.path)
	assert.Equal(t, "application/json", req.header.Get("Content-Type"))
	assert.Equal(t, float64(5), req.body["candidate"])
	assert.Equal(t, "Jane_CV.pdf", req.body["file_name"])
	assert.Equal(t, "resume", req.body["document_type"])
	assert.Equal(t, "application/pdf", req.body["content_type"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")), req.body["file_content"])
}

func TestUploadResumeEmpty(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {})

	_, err := client.UploadResume(context.Background(), 5, &Document{Name: "cv.pdf"})
	assert.Error(t, err)
	assert.Empty(t, *requests)
}

func TestDocumentType(t *testing.T) {
	tests := map[string]string{
		"resume.docx":     DocumentTypeResume,
		"John-CV.PDF":     DocumentTypeResume,
		"cover-letter.md": DocumentTypeOther,
	}

	for name, expect := range tests {
		assert.Equal(t, expect, DocumentType(name), name)
	}
}

func TestResumeUploadLinkFallsBackToURL(t *testing.T) {
	assert.Equal(t, "u", (&ResumeUpload{URL: "u"}).Link())
}
