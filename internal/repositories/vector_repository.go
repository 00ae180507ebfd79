package repositories

import (
	"context"
	"errors"
)

// VectorRepository defines the interface for vector database operations.
// Every read and every destructive write is scoped to a single bot; there is
// no method that queries across bots.
type VectorRepository interface {
	// EnsureCollection creates the collection if it does not exist
	EnsureCollection(ctx context.Context, collectionName string) error

	StoreChunks(ctx context.Context, collectionName string, chunks []*Chunk) error
	SearchChunks(ctx context.Context, collectionName string, botID string, queryEmbedding []float32, topK int) ([]*SearchResult, error)
	DeleteDocument(ctx context.Context, collectionName string, botID string, documentID string) (int, error)
	ReassignDocument(ctx context.Context, collectionName string, documentID string, fromBotID string, toBotID string) (int, error)
	CountChunks(ctx context.Context, collectionName string, botID string) (int, error)

	Ping(ctx context.Context) error
	Close() error
}

// Chunk represents a text chunk with embedding and metadata
type Chunk struct {
	ID         string                 `json:"id"`
	DocumentID string                 `json:"document_id"`
	BotID      string                 `json:"bot_id"`
	Text       string                 `json:"text"`
	Embedding  []float32              `json:"embedding"`
	Metadata   map[string]interface{} `json:"metadata"`
	ChunkIndex int                    `json:"chunk_index"`
}

// SearchResult is a single nearest-neighbour hit, in store ranking order
type SearchResult struct {
	ChunkID    string                 `json:"chunk_id"`
	DocumentID string                 `json:"document_id"`
	Text       string                 `json:"text"`
	Distance   float64                `json:"distance"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// ErrMissingBotID is returned when a bot-scoped operation is called without a bot id
var ErrMissingBotID = errors.New("bot id is required for vector operations")

// VectorRepositoryError represents errors from the vector repository
type VectorRepositoryError struct {
	Operation string
	Err       error
	Message   string
}

func (e *VectorRepositoryError) Error() string {
	if e.Message != "" {
		if e.Err != nil {
			return e.Message + ": " + e.Err.Error()
		}
		return e.Message
	}
	if e.Err != nil {
		return e.Operation + ": " + e.Err.Error()
	}
	return e.Operation + ": unknown error"
}

func (e *VectorRepositoryError) Unwrap() error {
	return e.Err
}

// NewVectorRepositoryError creates a new vector repository error
func NewVectorRepositoryError(operation string, err error, message string) *VectorRepositoryError {
	return &VectorRepositoryError{
		Operation: operation,
		Err:       err,
		Message:   message,
	}
}

func CollectionNotFoundError(name string) error {
	return NewVectorRepositoryError(
		"get_collection",
		nil,
		"collection not found: "+name,
	)
}

func MissingBotIDError(operation string) error {
	return NewVectorRepositoryError(operation, ErrMissingBotID, "")
}
