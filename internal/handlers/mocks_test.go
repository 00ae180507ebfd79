package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"iter"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ragbot/internal/models"
	"ragbot/internal/services"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// MockChatAnswerer is a mock implementation of ChatAnswerer
type MockChatAnswerer struct {
	mock.Mock
}

func (m *MockChatAnswerer) Answer(ctx context.Context, question, botID string) (*models.AnswerResult, error) {
	args := m.Called(ctx, question, botID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnswerResult), args.Error(1)
}

func (m *MockChatAnswerer) AnswerStream(ctx context.Context, question, botID string) iter.Seq[models.StreamEvent] {
	args := m.Called(ctx, question, botID)
	events := args.Get(0).([]models.StreamEvent)
	return func(yield func(models.StreamEvent) bool) {
		for _, ev := range events {
			if !yield(ev) {
				return
			}
		}
	}
}

func (m *MockChatAnswerer) CheckStrictMode(ctx context.Context, question, botID string) (*models.StrictModeCheck, error) {
	args := m.Called(ctx, question, botID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StrictModeCheck), args.Error(1)
}

// MockRetrievalInspector is a mock implementation of RetrievalInspector
type MockRetrievalInspector struct {
	mock.Mock
}

func (m *MockRetrievalInspector) Inspect(ctx context.Context, query, botID string, k int, threshold *float64) (*models.RetrievalInspection, error) {
	args := m.Called(ctx, query, botID, k, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RetrievalInspection), args.Error(1)
}

// MockBotManager is a mock implementation of BotManager
type MockBotManager struct {
	mock.Mock
}

func (m *MockBotManager) Create(ctx context.Context, req *models.BotCreate) (*models.BotConfig, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BotConfig), args.Error(1)
}

func (m *MockBotManager) Get(ctx context.Context, botID string) (*models.BotConfig, error) {
	args := m.Called(ctx, botID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BotConfig), args.Error(1)
}

func (m *MockBotManager) List(ctx context.Context, activeOnly bool) ([]*models.BotConfig, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BotConfig), args.Error(1)
}

func (m *MockBotManager) Update(ctx context.Context, botID string, update *models.BotUpdate) (*models.BotConfig, error) {
	args := m.Called(ctx, botID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BotConfig), args.Error(1)
}

func (m *MockBotManager) Delete(ctx context.Context, botID string) error {
	args := m.Called(ctx, botID)
	return args.Error(0)
}

func (m *MockBotManager) Presets() map[string]string {
	args := m.Called()
	return args.Get(0).(map[string]string)
}

// MockDocumentManager is a mock implementation of DocumentManager
type MockDocumentManager struct {
	mock.Mock
}

func (m *MockDocumentManager) UploadDocument(ctx context.Context, req *services.UploadDocumentRequest) (*models.UploadResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UploadResult), args.Error(1)
}

func (m *MockDocumentManager) ListDocuments(ctx context.Context, botID string) ([]*models.Document, error) {
	args := m.Called(ctx, botID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Document), args.Error(1)
}

func (m *MockDocumentManager) DeleteDocument(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

func (m *MockDocumentManager) MoveDocument(ctx context.Context, documentID, newBotID string) (*models.Document, error) {
	args := m.Called(ctx, documentID, newBotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

// MockAnalyticsReader is a mock implementation of AnalyticsReader
type MockAnalyticsReader struct {
	mock.Mock
}

func (m *MockAnalyticsReader) BotStats(ctx context.Context, botID string, days int) (*models.BotStats, error) {
	args := m.Called(ctx, botID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BotStats), args.Error(1)
}

func (m *MockAnalyticsReader) GlobalStats(ctx context.Context, days int) (*models.GlobalStats, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GlobalStats), args.Error(1)
}

func (m *MockAnalyticsReader) PopularQuestions(ctx context.Context, botID string, limit int) ([]models.PopularQuestion, error) {
	args := m.Called(ctx, botID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PopularQuestion), args.Error(1)
}

func (m *MockAnalyticsReader) Keywords(ctx context.Context, botID string, limit int) ([]models.KeywordWeight, error) {
	args := m.Called(ctx, botID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.KeywordWeight), args.Error(1)
}

func (m *MockAnalyticsReader) Cleanup(ctx context.Context, daysToKeep int) (int, error) {
	args := m.Called(ctx, daysToKeep)
	return args.Int(0), args.Error(1)
}

// serve routes one request through a router holding a single pattern
func serve(pattern, method string, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc(pattern, handler).Methods(method)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}
