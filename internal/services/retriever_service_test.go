package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ragbot/internal/repositories"
)

const testCollection = "knowledge"

func testLogger() *log.Logger {
	return log.New(io.Discard, "[TEST] ", log.LstdFlags)
}

func setupTestRetriever(t *testing.T) (*RetrieverService, *MockEmbedder, *MockVectorRepository) {
	embedder := new(MockEmbedder)
	vectorRepo := new(MockVectorRepository)
	return NewRetrieverService(embedder, vectorRepo, testCollection, testLogger()), embedder, vectorRepo
}

func searchResults(distances ...float64) []*repositories.SearchResult {
	out := make([]*repositories.SearchResult, len(distances))
	for i, d := range distances {
		out[i] = &repositories.SearchResult{
			ChunkID:  fmt.Sprintf("c%d", i),
			Text:     fmt.Sprintf("chunk %d", i),
			Distance: d,
			Metadata: map[string]interface{}{"bot_id": "bot-a"},
		}
	}
	return out
}

func TestRetrieverService_Search(t *testing.T) {
	svc, embedder, vectorRepo := setupTestRetriever(t)
	ctx := context.Background()
	embedding := []float32{0.1, 0.2}

	embedder.On("EmbedQuery", ctx, "refund policy").Return(embedding, nil)
	vectorRepo.On("SearchChunks", ctx, testCollection, "bot-a", embedding, 4).
		Return(searchResults(0.1, 0.5, 0.75), nil)

	results, err := svc.Search(ctx, "refund policy", "bot-a", 4, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.InDelta(t, 0.9, results[0].Similarity, 1e-9)
	assert.InDelta(t, 0.5, results[1].Similarity, 1e-9)
	assert.InDelta(t, 0.25, results[2].Similarity, 1e-9)
	assert.Equal(t, "chunk 0", results[0].Text)

	vectorRepo.AssertExpectations(t)
}

func TestRetrieverService_SearchThresholdIsInclusiveSubsequence(t *testing.T) {
	svc, embedder, vectorRepo := setupTestRetriever(t)
	ctx := context.Background()

	embedder.On("EmbedQuery", ctx, mock.Anything).Return([]float32{1}, nil)
	vectorRepo.On("SearchChunks", ctx, testCollection, "bot-a", mock.Anything, 5).
		Return(searchResults(0.0, 0.25, 0.5, 0.75, 1.5), nil)

	unfiltered, err := svc.Search(ctx, "q", "bot-a", 5, nil)
	require.NoError(t, err)

	for _, threshold := range []float64{0, 0.25, 0.5, 0.75, 1} {
		t.Run(fmt.Sprintf("threshold %.2f", threshold), func(t *testing.T) {
			th := threshold
			filtered, err := svc.Search(ctx, "q", "bot-a", 5, &th)
			require.NoError(t, err)

			j := 0
			for _, f := range filtered {
				assert.GreaterOrEqual(t, f.Similarity, th)
				for j < len(unfiltered) && unfiltered[j].Text != f.Text {
					j++
				}
				assert.Less(t, j, len(unfiltered), "result %s out of order", f.Text)
				j++
			}
		})
	}

	exact := 0.5
	kept, err := svc.Search(ctx, "q", "bot-a", 5, &exact)
	require.NoError(t, err)
	require.Len(t, kept, 3)
	assert.Equal(t, "chunk 2", kept[2].Text, "a score equal to the threshold is kept")
}

func TestRetrieverService_SearchZeroK(t *testing.T) {
	svc, embedder, vectorRepo := setupTestRetriever(t)

	results, err := svc.Search(context.Background(), "q", "bot-a", 0, nil)
	require.NoError(t, err)
	assert.Empty(t, results)

	embedder.AssertNotCalled(t, "EmbedQuery", mock.Anything, mock.Anything)
	vectorRepo.AssertNotCalled(t, "SearchChunks", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRetrieverService_SearchFailures(t *testing.T) {
	t.Run("embedding fails", func(t *testing.T) {
		svc, embedder, _ := setupTestRetriever(t)
		embedder.On("EmbedQuery", mock.Anything, "q").Return(nil, errors.New("sidecar down"))

		_, err := svc.Search(context.Background(), "q", "bot-a", 3, nil)
		assert.ErrorIs(t, err, ErrRetrievalFailed)
		assert.Contains(t, err.Error(), "sidecar down")
	})

	t.Run("vector store fails", func(t *testing.T) {
		svc, embedder, vectorRepo := setupTestRetriever(t)
		embedder.On("EmbedQuery", mock.Anything, "q").Return([]float32{1}, nil)
		vectorRepo.On("SearchChunks", mock.Anything, testCollection, "bot-a", mock.Anything, 3).
			Return(nil, errors.New("connection refused"))

		_, err := svc.Search(context.Background(), "q", "bot-a", 3, nil)
		assert.ErrorIs(t, err, ErrRetrievalFailed)
	})
}

// memoryVectorRepo answers SearchChunks from an in-memory, bot-partitioned index
type memoryVectorRepo struct {
	MockVectorRepository
	mu     sync.RWMutex
	chunks map[string][]*repositories.SearchResult
}

func (r *memoryVectorRepo) SearchChunks(ctx context.Context, collectionName string, botID string, queryEmbedding []float32, topK int) ([]*repositories.SearchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	own := r.chunks[botID]
	if len(own) > topK {
		own = own[:topK]
	}
	return own, nil
}

func (r *memoryVectorRepo) add(botID string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < n; i++ {
		r.chunks[botID] = append(r.chunks[botID], &repositories.SearchResult{
			ChunkID:  fmt.Sprintf("%s_%d", botID, i),
			Text:     botID + " text",
			Distance: 0.1,
			Metadata: map[string]interface{}{"bot_id": botID},
		})
	}
}

func TestRetrieverService_TenantIsolationUnderConcurrency(t *testing.T) {
	store := &memoryVectorRepo{chunks: map[string][]*repositories.SearchResult{}}
	embedder := new(MockEmbedder)
	embedder.On("EmbedQuery", mock.Anything, mock.Anything).Return([]float32{1}, nil)
	svc := NewRetrieverService(embedder, store, testCollection, testLogger())

	bots := []string{"bot-a", "bot-b", "bot-c"}
	var wg sync.WaitGroup
	for i := 0; i < 60; i++ {
		botID := bots[i%len(bots)]
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.add(botID, 1)
		}()
		go func() {
			defer wg.Done()
			results, err := svc.Search(context.Background(), "q", botID, 10, nil)
			assert.NoError(t, err)
			for _, r := range results {
				assert.Equal(t, botID, r.Metadata["bot_id"])
			}
		}()
	}
	wg.Wait()
}

func TestRetrieverService_Inspect(t *testing.T) {
	svc, embedder, vectorRepo := setupTestRetriever(t)
	ctx := context.Background()
	long := make([]byte, 250)
	for i := range long {
		long[i] = 'x'
	}
	results := searchResults(0.2, 0.7)
	results[0].Text = string(long)

	embedder.On("EmbedQuery", ctx, "q").Return([]float32{1}, nil)
	vectorRepo.On("SearchChunks", ctx, testCollection, "bot-a", mock.Anything, 5).Return(results, nil)

	threshold := 0.5
	inspection, err := svc.Inspect(ctx, "q", "bot-a", 5, &threshold)
	require.NoError(t, err)

	assert.Equal(t, 2, inspection.TotalResults)
	assert.Equal(t, 1, inspection.PassingResults)
	require.Len(t, inspection.Chunks, 2)
	assert.True(t, inspection.Chunks[0].PassesThreshold)
	assert.False(t, inspection.Chunks[1].PassesThreshold)
	assert.Equal(t, 1, inspection.Chunks[0].Index)
	assert.Len(t, inspection.Chunks[0].TextPreview, 203)
	assert.Equal(t, "chunk 1", inspection.Chunks[1].TextPreview)

	rec := inspection.Recommendations
	assert.InDelta(t, 0.55, rec.AvgSimilarity, 1e-9)
	assert.InDelta(t, 0.3, rec.MinSimilarity, 1e-9)
	assert.InDelta(t, 0.8, rec.MaxSimilarity, 1e-9)
	assert.Equal(t, 0.5, rec.SuggestedThreshold)
}

func TestRecommendThreshold(t *testing.T) {
	assert.Equal(t, 0.3, recommendThreshold(nil).SuggestedThreshold)
	assert.Equal(t, 0.3, recommendThreshold(fragments(0.35, 0.3)).SuggestedThreshold)
	assert.Equal(t, 0.5, recommendThreshold(fragments(0.4)).SuggestedThreshold)
}
