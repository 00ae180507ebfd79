package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"ragbot/internal/models"
	"ragbot/internal/repositories"
)

const (
	maxUploadSize = 20 << 20
	storeBatch    = 100
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyDocument       = errors.New("document contains no text")
)

var supportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
}

// UploadRecorder logs completed uploads for analytics
type UploadRecorder interface {
	RecordUpload(ctx context.Context, upload *models.DocumentUpload) error
}

// DocumentService ingests documents into a bot's knowledge base and manages
// the document registry
type DocumentService struct {
	embedder   Embedder
	docRepo    repositories.DocumentRepository
	vectorRepo repositories.VectorRepository
	botRepo    repositories.BotRepository
	uploads    UploadRecorder
	collection string
	chunkSize  int
	logger     *log.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	embedder Embedder,
	docRepo repositories.DocumentRepository,
	vectorRepo repositories.VectorRepository,
	botRepo repositories.BotRepository,
	uploads UploadRecorder,
	collection string,
	logger *log.Logger,
) *DocumentService {
	return &DocumentService{
		embedder:   embedder,
		docRepo:    docRepo,
		vectorRepo: vectorRepo,
		botRepo:    botRepo,
		uploads:    uploads,
		collection: collection,
		chunkSize:  DefaultChunkSize,
		logger:     logger,
	}
}

// UploadDocumentRequest represents a request to ingest one file for a bot
type UploadDocumentRequest struct {
	BotID       string
	Filename    string
	ContentType string
	FileContent io.Reader
	FileSize    int64
}

// UploadDocument runs the ingestion pipeline: read, chunk, embed, store
func (s *DocumentService) UploadDocument(ctx context.Context, req *UploadDocumentRequest) (*models.UploadResult, error) {
	startTime := time.Now()

	if err := s.validateUploadRequest(req); err != nil {
		s.logger.Printf("Invalid upload request: %v", err)
		return nil, err
	}

	if _, err := s.botRepo.Get(ctx, req.BotID); err != nil {
		return nil, err
	}

	text, err := readText(req.FileContent)
	if err != nil {
		return nil, err
	}

	documentID := uuid.New().String()
	doc := &models.Document{
		ID:          documentID,
		BotID:       req.BotID,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		FileSize:    req.FileSize,
		Status:      models.DocumentStatusProcessing,
	}
	if err := s.docRepo.Register(ctx, doc); err != nil {
		s.logger.Printf("Failed to register document: %v", err)
		return nil, fmt.Errorf("failed to register document: %w", err)
	}

	chunkCount, err := s.processDocument(ctx, doc, text)
	if err != nil {
		s.logger.Printf("❌ Failed to process document %s: %v", documentID, err)
		doc.Status = models.DocumentStatusFailed
		if saveErr := s.docRepo.Save(ctx, doc); saveErr != nil {
			s.logger.Printf("Failed to mark document %s failed: %v", documentID, saveErr)
		}
		return nil, fmt.Errorf("failed to process document: %w", err)
	}

	doc.Status = models.DocumentStatusCompleted
	doc.ChunkCount = chunkCount
	if err := s.docRepo.Save(ctx, doc); err != nil {
		// chunks are stored; only the registry entry is stale
		s.logger.Printf("Failed to update document status: %v", err)
	}

	if s.uploads != nil {
		upload := &models.DocumentUpload{
			BotID:       doc.BotID,
			DocumentID:  doc.ID,
			Filename:    doc.Filename,
			ChunksCount: chunkCount,
		}
		if err := s.uploads.RecordUpload(context.WithoutCancel(ctx), upload); err != nil {
			s.logger.Printf("⚠️  Failed to record upload of %s: %v", documentID, err)
		}
	}

	s.logger.Printf("✅ Document processed: document_id=%s, bot=%s, chunks=%d, time_ms=%d",
		documentID, doc.BotID, chunkCount, time.Since(startTime).Milliseconds())

	return &models.UploadResult{
		Message:  "Document processed successfully",
		Document: doc,
	}, nil
}

func (s *DocumentService) processDocument(ctx context.Context, doc *models.Document, text string) (int, error) {
	s.logger.Printf("[%s] Step 1/3: Chunking text (%d chars)", doc.ID, utf8.RuneCountInString(text))
	texts := ChunkText(text, s.chunkSize)
	if len(texts) == 0 {
		return 0, ErrEmptyDocument
	}

	s.logger.Printf("[%s] Step 2/3: Generating %d embeddings", doc.ID, len(texts))
	embeddings, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding failed: %w", err)
	}
	if len(embeddings) != len(texts) {
		return 0, fmt.Errorf("embedding count mismatch: got %d, expected %d", len(embeddings), len(texts))
	}

	s.logger.Printf("[%s] Step 3/3: Storing chunks in vector DB", doc.ID)
	if err := s.vectorRepo.EnsureCollection(ctx, s.collection); err != nil {
		return 0, fmt.Errorf("failed to prepare collection: %w", err)
	}

	chunks := make([]*repositories.Chunk, len(texts))
	for i, chunkText := range texts {
		chunks[i] = &repositories.Chunk{
			ID:         fmt.Sprintf("%s_%d", doc.ID, i),
			DocumentID: doc.ID,
			BotID:      doc.BotID,
			Text:       chunkText,
			Embedding:  embeddings[i],
			ChunkIndex: i,
			Metadata: map[string]interface{}{
				"filename": doc.Filename,
			},
		}
	}

	for i := 0; i < len(chunks); i += storeBatch {
		end := min(i+storeBatch, len(chunks))
		if err := s.vectorRepo.StoreChunks(ctx, s.collection, chunks[i:end]); err != nil {
			return 0, fmt.Errorf("failed to store batch %d-%d: %w", i, end, err)
		}
	}

	return len(chunks), nil
}

// validateUploadRequest validates the upload request parameters
func (s *DocumentService) validateUploadRequest(req *UploadDocumentRequest) error {
	if req.BotID == "" {
		return &models.ValidationError{Field: "bot_id", Message: "bot ID is required"}
	}
	if req.Filename == "" {
		return &models.ValidationError{Field: "file", Message: "filename is required"}
	}
	if req.FileContent == nil {
		return &models.ValidationError{Field: "file", Message: "file content is required"}
	}
	if req.FileSize > maxUploadSize {
		return &models.ValidationError{Field: "file", Message: fmt.Sprintf("file exceeds %d bytes", maxUploadSize)}
	}

	if !isTextUpload(req.Filename, req.ContentType) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, req.Filename)
	}
	return nil
}

func isTextUpload(filename, contentType string) bool {
	if supportedExtensions[strings.ToLower(filepath.Ext(filename))] {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/plain" || mediaType == "text/markdown"
}

func readText(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file content: %w", err)
	}
	if len(data) > maxUploadSize {
		return "", &models.ValidationError{Field: "file", Message: fmt.Sprintf("file exceeds %d bytes", maxUploadSize)}
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: content is not valid UTF-8 text", ErrUnsupportedFileType)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// ListDocuments returns the registered documents, of one bot when botID is set
func (s *DocumentService) ListDocuments(ctx context.Context, botID string) ([]*models.Document, error) {
	if botID == "" {
		return s.docRepo.List(ctx)
	}
	return s.docRepo.ListByBot(ctx, botID)
}

// GetDocument retrieves document metadata
func (s *DocumentService) GetDocument(ctx context.Context, documentID string) (*models.Document, error) {
	return s.docRepo.Get(ctx, documentID)
}

// DeleteDocument removes a document and all its chunks
func (s *DocumentService) DeleteDocument(ctx context.Context, documentID string) error {
	s.logger.Printf("Deleting document: %s", documentID)

	doc, err := s.docRepo.Get(ctx, documentID)
	if err != nil {
		return err
	}

	deleted, err := s.vectorRepo.DeleteDocument(ctx, s.collection, doc.BotID, documentID)
	if err != nil {
		s.logger.Printf("Failed to delete from vector DB: %v", err)
		return fmt.Errorf("failed to delete chunks from vector DB: %w", err)
	}

	if err := s.docRepo.Delete(ctx, documentID); err != nil {
		s.logger.Printf("Failed to delete from document registry: %v", err)
		return fmt.Errorf("failed to delete from document registry: %w", err)
	}

	s.logger.Printf("Document deleted: %s (%d chunks)", documentID, deleted)
	return nil
}

// MoveDocument reassigns a document and its chunks to another bot
func (s *DocumentService) MoveDocument(ctx context.Context, documentID, newBotID string) (*models.Document, error) {
	if newBotID == "" {
		return nil, &models.ValidationError{Field: "new_bot_id", Message: "target bot ID is required"}
	}

	doc, err := s.docRepo.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.BotID == newBotID {
		return doc, nil
	}

	if _, err := s.botRepo.Get(ctx, newBotID); err != nil {
		return nil, err
	}

	moved, err := s.vectorRepo.ReassignDocument(ctx, s.collection, documentID, doc.BotID, newBotID)
	if err != nil {
		return nil, fmt.Errorf("failed to reassign chunks: %w", err)
	}

	updated, err := s.docRepo.Reassign(ctx, documentID, newBotID)
	if err != nil {
		return nil, err
	}

	s.logger.Printf("Document %s moved from %s to %s (%d chunks)", documentID, doc.BotID, newBotID, moved)
	return updated, nil
}
