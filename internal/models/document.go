package models

import (
	"time"
)

// Document is one uploaded file in a bot's knowledge base
type Document struct {
	ID          string                 `json:"document_id"`
	BotID       string                 `json:"bot_id"`
	Filename    string                 `json:"filename"`
	ContentType string                 `json:"content_type,omitempty"`
	FileSize    int64                  `json:"file_size,omitempty"`
	ChunkCount  int                    `json:"chunk_count"`
	Status      DocumentStatus         `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// DocumentStatus represents the ingestion status of a document
type DocumentStatus string

const (
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusCompleted  DocumentStatus = "completed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// Validate checks if the document is valid
func (d *Document) Validate() error {
	if d.ID == "" {
		return &ValidationError{Field: "document_id", Message: "document ID is required"}
	}
	if d.BotID == "" {
		return &ValidationError{Field: "bot_id", Message: "bot ID is required"}
	}
	if d.Filename == "" {
		return &ValidationError{Field: "filename", Message: "filename is required"}
	}
	if d.ChunkCount < 0 {
		return &ValidationError{Field: "chunk_count", Message: "chunk count cannot be negative"}
	}
	if !d.Status.IsValid() {
		return &ValidationError{Field: "status", Message: "invalid status: " + string(d.Status)}
	}
	return nil
}

// IsValid checks if document status is valid
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusProcessing, DocumentStatusCompleted, DocumentStatusFailed:
		return true
	default:
		return false
	}
}

func (s DocumentStatus) String() string {
	return string(s)
}

// UploadResult is returned to the caller after an ingestion
type UploadResult struct {
	Message  string    `json:"message"`
	Document *Document `json:"document"`
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
