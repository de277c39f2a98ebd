package model

import (
	"strings"
	"time"
)

// DocumentStatus constants
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusPublished DocumentStatus = "published"
	DocumentStatusArchived  DocumentStatus = "archived"
)

// MaxDocumentSizeBytes bounds uploaded content (10 MiB).
const MaxDocumentSizeBytes = 10 << 20

// Document is stored content addressed by a globally unique path. Version
// strictly increases with every content update.
type Document struct {
	ID        string         `json:"id"`
	Path      string         `json:"path"`
	Title     string         `json:"title"`
	MimeType  string         `json:"mime_type"`
	SizeBytes int64          `json:"size_bytes"`
	Version   int            `json:"version"`
	Status    DocumentStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CreateDocumentRequest carries the fields for registering a document.
type CreateDocumentRequest struct {
	Path      string `json:"path"`
	Title     string `json:"title"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}

// Validate checks all fields and returns every violation found.
func (r *CreateDocumentRequest) Validate() []FieldError {
	var errs []FieldError

	if fe := checkDocumentPath(r.Path); fe != nil {
		errs = append(errs, *fe)
	}
	if r.Title == "" {
		errs = append(errs, FieldError{Field: "title", Code: "INVALID_TITLE", Message: "is required"})
	}
	if r.MimeType == "" || !strings.Contains(r.MimeType, "/") {
		errs = append(errs, FieldError{Field: "mime_type", Code: "INVALID_MIME_TYPE",
			Message: "must be a type/subtype pair"})
	}
	if fe := checkDocumentSize(r.SizeBytes); fe != nil {
		errs = append(errs, *fe)
	}
	return errs
}

// UpdateDocumentContentRequest replaces a document's content. The service
// bumps the version counter.
type UpdateDocumentContentRequest struct {
	MimeType  *string `json:"mime_type,omitempty"`
	SizeBytes int64   `json:"size_bytes"`
}

// Validate checks the fields that are present.
func (r *UpdateDocumentContentRequest) Validate() []FieldError {
	var errs []FieldError

	if r.MimeType != nil && (*r.MimeType == "" || !strings.Contains(*r.MimeType, "/")) {
		errs = append(errs, FieldError{Field: "mime_type", Code: "INVALID_MIME_TYPE",
			Message: "must be a type/subtype pair"})
	}
	if fe := checkDocumentSize(r.SizeBytes); fe != nil {
		errs = append(errs, *fe)
	}
	return errs
}

func checkDocumentPath(path string) *FieldError {
	if path == "" || !strings.HasPrefix(path, "/") || strings.Contains(path, "..") {
		return &FieldError{Field: "path", Code: "INVALID_PATH",
			Message: "must be absolute and must not contain '..'"}
	}
	return nil
}

func checkDocumentSize(size int64) *FieldError {
	if size <= 0 || size > MaxDocumentSizeBytes {
		return &FieldError{Field: "size_bytes", Code: "INVALID_SIZE",
			Message: "must be positive and at most 10 MiB"}
	}
	return nil
}
