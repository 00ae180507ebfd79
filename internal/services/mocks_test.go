package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"ragbot/internal/models"
	"ragbot/internal/repositories"
)

// ============================================================================
// Mocks
// ============================================================================

type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// EmbedDocuments also accepts a func(ctx, texts) [][]float32 as the first return value
func (m *MockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if fn, ok := args.Get(0).(func(context.Context, []string) [][]float32); ok {
		return fn(ctx, texts), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

type MockVectorRepository struct {
	mock.Mock
}

func (m *MockVectorRepository) EnsureCollection(ctx context.Context, collectionName string) error {
	args := m.Called(ctx, collectionName)
	return args.Error(0)
}

func (m *MockVectorRepository) StoreChunks(ctx context.Context, collectionName string, chunks []*repositories.Chunk) error {
	args := m.Called(ctx, collectionName, chunks)
	return args.Error(0)
}

func (m *MockVectorRepository) SearchChunks(ctx context.Context, collectionName string, botID string, queryEmbedding []float32, topK int) ([]*repositories.SearchResult, error) {
	args := m.Called(ctx, collectionName, botID, queryEmbedding, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repositories.SearchResult), args.Error(1)
}

func (m *MockVectorRepository) DeleteDocument(ctx context.Context, collectionName string, botID string, documentID string) (int, error) {
	args := m.Called(ctx, collectionName, botID, documentID)
	return args.Int(0), args.Error(1)
}

func (m *MockVectorRepository) ReassignDocument(ctx context.Context, collectionName string, documentID string, fromBotID string, toBotID string) (int, error) {
	args := m.Called(ctx, collectionName, documentID, fromBotID, toBotID)
	return args.Int(0), args.Error(1)
}

func (m *MockVectorRepository) CountChunks(ctx context.Context, collectionName string, botID string) (int, error) {
	args := m.Called(ctx, collectionName, botID)
	return args.Int(0), args.Error(1)
}

func (m *MockVectorRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockVectorRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockBotRegistry struct {
	mock.Mock
}

func (m *MockBotRegistry) Get(ctx context.Context, botID string) (*models.BotConfig, error) {
	args := m.Called(ctx, botID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BotConfig), args.Error(1)
}

type MockRetriever struct {
	mock.Mock
}

func (m *MockRetriever) Search(ctx context.Context, query, botID string, k int, threshold *float64) ([]models.RetrievedFragment, error) {
	args := m.Called(ctx, query, botID, k, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RetrievedFragment), args.Error(1)
}

type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Chat(ctx context.Context, messages []models.ChatMessage, opts models.GenerationOptions) (string, error) {
	args := m.Called(ctx, messages, opts)
	return args.String(0), args.Error(1)
}

// ChatStream replays the deltas given as the first return value, then returns the second
func (m *MockLLMClient) ChatStream(ctx context.Context, messages []models.ChatMessage, opts models.GenerationOptions, onChunk func(string) error) error {
	args := m.Called(ctx, messages, opts)
	if deltas, ok := args.Get(0).([]string); ok {
		for _, d := range deltas {
			if err := onChunk(d); err != nil {
				return err
			}
		}
	}
	return args.Error(1)
}

func (m *MockLLMClient) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// recordingSink collects interactions in memory
type recordingSink struct {
	mu      sync.Mutex
	records []*models.Interaction
	err     error
}

func (s *recordingSink) Record(ctx context.Context, interaction *models.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, interaction)
	return s.err
}

func (s *recordingSink) all() []*models.Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.Interaction(nil), s.records...)
}
