package repositories

import (
	"context"
	"errors"

	"ragbot/internal/models"
)

// DocumentRepository defines the interface for the uploaded-document registry.
// It tracks which bot owns which document; chunk text lives in the VectorRepository.
type DocumentRepository interface {
	Register(ctx context.Context, doc *models.Document) error
	Get(ctx context.Context, documentID string) (*models.Document, error)
	List(ctx context.Context) ([]*models.Document, error)
	ListByBot(ctx context.Context, botID string) ([]*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
	Reassign(ctx context.Context, documentID string, newBotID string) (*models.Document, error)
	Delete(ctx context.Context, documentID string) error
	CountByBot(ctx context.Context, botID string) (int, error)
}

var ErrDocumentNotFound = errors.New("document not found")

// DocumentRepositoryError represents errors from the document repository
type DocumentRepositoryError struct {
	Operation  string
	DocumentID string
	Err        error
	Message    string
}

func (e *DocumentRepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	prefix := e.Operation
	if e.DocumentID != "" {
		prefix += " (doc: " + e.DocumentID + ")"
	}
	if e.Err != nil {
		return prefix + ": " + e.Err.Error()
	}
	return prefix + ": unknown error"
}

func (e *DocumentRepositoryError) Unwrap() error {
	return e.Err
}

// NewDocumentRepositoryError creates a new document repository error
func NewDocumentRepositoryError(operation string, documentID string, err error, message string) *DocumentRepositoryError {
	return &DocumentRepositoryError{
		Operation:  operation,
		DocumentID: documentID,
		Err:        err,
		Message:    message,
	}
}

func DocumentNotFoundError(documentID string) error {
	return NewDocumentRepositoryError("get_document", documentID, ErrDocumentNotFound, "document not found: "+documentID)
}

func DocumentAlreadyExistsError(documentID string) error {
	return NewDocumentRepositoryError("register_document", documentID, nil, "document already exists: "+documentID)
}
