package services

import (
	"context"
	"log"
	"time"

	"ragbot/internal/models"
	"ragbot/internal/repositories"
)

const (
	debugPreviewLength = 200

	lowSimilarityThreshold  = 0.3
	highSimilarityThreshold = 0.5
	weakAverageSimilarity   = 0.4
)

// Embedder turns text into vectors. The query and document sides may use
// different instructions on some models, so they are separate calls.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// RetrieverService finds the fragments of one bot's documents closest to a query
type RetrieverService struct {
	embedder   Embedder
	vectorRepo repositories.VectorRepository
	collection string
	logger     *log.Logger
}

// NewRetrieverService creates a new retriever over a shared collection
func NewRetrieverService(
	embedder Embedder,
	vectorRepo repositories.VectorRepository,
	collection string,
	logger *log.Logger,
) *RetrieverService {
	return &RetrieverService{
		embedder:   embedder,
		vectorRepo: vectorRepo,
		collection: collection,
		logger:     logger,
	}
}

// Search returns up to k fragments owned by botID, in store order.
// With a threshold, fragments scoring below it are dropped; equal scores are kept.
func (s *RetrieverService) Search(ctx context.Context, query, botID string, k int, threshold *float64) ([]models.RetrievedFragment, error) {
	raw, err := s.search(ctx, query, botID, k)
	if err != nil {
		return nil, err
	}

	fragments := make([]models.RetrievedFragment, 0, len(raw))
	for _, f := range raw {
		if threshold != nil && f.Similarity < *threshold {
			continue
		}
		fragments = append(fragments, f)
	}

	s.logger.Printf("Retrieved %d/%d fragments for bot %s", len(fragments), len(raw), botID)
	return fragments, nil
}

func (s *RetrieverService) search(ctx context.Context, query, botID string, k int) ([]models.RetrievedFragment, error) {
	if k <= 0 {
		return []models.RetrievedFragment{}, nil
	}

	start := time.Now()
	embedding, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		s.logger.Printf("Failed to embed query: %v", err)
		return nil, newChatError(ErrRetrievalFailed, botID, err)
	}

	results, err := s.vectorRepo.SearchChunks(ctx, s.collection, botID, embedding, k)
	if err != nil {
		s.logger.Printf("Vector search failed for bot %s: %v", botID, err)
		return nil, newChatError(ErrRetrievalFailed, botID, err)
	}

	fragments := make([]models.RetrievedFragment, 0, len(results))
	for _, r := range results {
		fragments = append(fragments, models.RetrievedFragment{
			Text:       r.Text,
			Metadata:   r.Metadata,
			Distance:   r.Distance,
			Similarity: Similarity(r.Distance),
		})
	}

	s.logger.Printf("Vector search for bot %s returned %d results in %.2fms",
		botID, len(fragments), time.Since(start).Seconds()*1000)
	return fragments, nil
}

// Inspect returns the unfiltered results of a query annotated with whether each
// passes threshold, plus a suggested threshold for tuning the bot
func (s *RetrieverService) Inspect(ctx context.Context, query, botID string, k int, threshold *float64) (*models.RetrievalInspection, error) {
	raw, err := s.search(ctx, query, botID, k)
	if err != nil {
		return nil, err
	}

	inspection := &models.RetrievalInspection{
		Query:        query,
		BotID:        botID,
		Threshold:    threshold,
		K:            k,
		TotalResults: len(raw),
		Chunks:       make([]models.InspectedChunk, 0, len(raw)),
	}

	for i, f := range raw {
		passes := threshold == nil || f.Similarity >= *threshold
		if passes {
			inspection.PassingResults++
		}
		inspection.Chunks = append(inspection.Chunks, models.InspectedChunk{
			Index:           i + 1,
			Similarity:      f.Similarity,
			Distance:        f.Distance,
			PassesThreshold: passes,
			TextPreview:     preview(f.Text, debugPreviewLength),
			FullText:        f.Text,
			Metadata:        f.Metadata,
		})
	}

	inspection.Recommendations = recommendThreshold(raw)
	return inspection, nil
}

func recommendThreshold(fragments []models.RetrievedFragment) models.ThresholdRecommendation {
	rec := models.ThresholdRecommendation{SuggestedThreshold: lowSimilarityThreshold}
	if len(fragments) == 0 {
		return rec
	}

	rec.MinSimilarity = fragments[0].Similarity
	rec.MaxSimilarity = fragments[0].Similarity
	var sum float64
	for _, f := range fragments {
		sum += f.Similarity
		rec.MinSimilarity = min(rec.MinSimilarity, f.Similarity)
		rec.MaxSimilarity = max(rec.MaxSimilarity, f.Similarity)
	}
	rec.AvgSimilarity = sum / float64(len(fragments))

	if rec.AvgSimilarity >= weakAverageSimilarity {
		rec.SuggestedThreshold = highSimilarityThreshold
	}
	return rec
}

// preview cuts text to n runes, marking the cut with "..."
func preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
