package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"strings"
	"time"

	"ragbot/internal/models"
)

const (
	FallbackWarning = "no relevant documents found (strict mode)"

	strictPreviewLength   = 100
	defaultMetricsTimeout = 5 * time.Second
)

var errStreamCancelled = errors.New("stream cancelled by client")

// BotRegistry resolves bot configurations
type BotRegistry interface {
	Get(ctx context.Context, botID string) (*models.BotConfig, error)
}

// Retriever searches a bot's knowledge base
type Retriever interface {
	Search(ctx context.Context, query, botID string, k int, threshold *float64) ([]models.RetrievedFragment, error)
}

// LLMClient generates answers from a message list
type LLMClient interface {
	Chat(ctx context.Context, messages []models.ChatMessage, opts models.GenerationOptions) (string, error)
	// ChatStream calls onChunk for every text delta; an error from onChunk stops the stream and is returned
	ChatStream(ctx context.Context, messages []models.ChatMessage, opts models.GenerationOptions, onChunk func(string) error) error
	HealthCheck(ctx context.Context) error
}

// MetricsSink receives one record per chat request
type MetricsSink interface {
	Record(ctx context.Context, interaction *models.Interaction) error
}

// ChatService answers questions for a bot: it loads the bot, retrieves
// fragments, applies the answer policy and calls the model
type ChatService struct {
	bots      BotRegistry
	retriever Retriever
	llm       LLMClient
	metrics   MetricsSink
	logger    *log.Logger

	metricsTimeout time.Duration
}

// NewChatService creates a new chat service
func NewChatService(bots BotRegistry, retriever Retriever, llm LLMClient, metrics MetricsSink, logger *log.Logger) *ChatService {
	return &ChatService{
		bots:           bots,
		retriever:      retriever,
		llm:            llm,
		metrics:        metrics,
		logger:         logger,
		metricsTimeout: defaultMetricsTimeout,
	}
}

// Answer produces a complete answer in one call
func (s *ChatService) Answer(ctx context.Context, question, botID string) (*models.AnswerResult, error) {
	start := time.Now()
	if botID == "" {
		botID = models.DefaultBotID
	}

	var (
		answer       string
		sourcesCount int
		runErr       error
	)
	defer func() {
		s.recordInteraction(ctx, botID, question, answer, sourcesCount, time.Since(start), runErr)
	}()

	bot, plan, err := s.prepare(ctx, question, botID)
	if err != nil {
		runErr = err
		return nil, err
	}
	sourcesCount = len(plan.Sources)

	if plan.Fallback {
		answer = plan.FallbackText
		s.logger.Printf("⚠️  No sources for bot %s, returning fallback response", botID)
		return &models.AnswerResult{
			Answer:    answer,
			Sources:   plan.Sources,
			BotConfig: bot.Snapshot(0),
			Warning:   FallbackWarning,
		}, nil
	}

	text, err := s.llm.Chat(ctx, plan.Messages, generationOptions(bot))
	if err != nil {
		runErr = newChatError(ErrGenerationFailed, botID, err)
		s.logger.Printf("❌ Generation failed for bot %s: %v", botID, err)
		return nil, runErr
	}
	answer = text

	return &models.AnswerResult{
		Answer:    answer,
		Sources:   plan.Sources,
		BotConfig: bot.Snapshot(sourcesCount),
	}, nil
}

// AnswerStream produces the answer as a sequence of events: one metadata event,
// then chunks, then done. A failure ends the sequence with a single error event.
// Metrics are recorded when the sequence ends, including when the consumer stops early.
func (s *ChatService) AnswerStream(ctx context.Context, question, botID string) iter.Seq[models.StreamEvent] {
	if botID == "" {
		botID = models.DefaultBotID
	}

	return func(yield func(models.StreamEvent) bool) {
		start := time.Now()
		var (
			answer       strings.Builder
			sourcesCount int
			runErr       error
		)
		defer func() {
			s.recordInteraction(ctx, botID, question, answer.String(), sourcesCount, time.Since(start), runErr)
		}()

		// stopped is set once yield returns false; yield must not be called again after that
		stopped := false
		emit := func(event models.StreamEvent) bool {
			if stopped {
				return false
			}
			stopped = !yield(event)
			return !stopped
		}
		fail := func(err error) {
			runErr = err
			emit(models.ErrorEvent(err.Error()))
		}

		bot, plan, err := s.prepare(ctx, question, botID)
		if err != nil {
			fail(err)
			return
		}
		sourcesCount = len(plan.Sources)

		if !emit(models.MetadataEvent(plan.Sources, bot.Snapshot(sourcesCount))) {
			runErr = errStreamCancelled
			return
		}

		if plan.Fallback {
			answer.WriteString(plan.FallbackText)
			if !emit(models.ChunkEvent(plan.FallbackText)) {
				runErr = errStreamCancelled
				return
			}
			emit(models.DoneEvent(true))
			return
		}

		err = s.llm.ChatStream(ctx, plan.Messages, generationOptions(bot), func(delta string) error {
			if stopped {
				return errStreamCancelled
			}
			answer.WriteString(delta)
			if !emit(models.ChunkEvent(delta)) {
				return errStreamCancelled
			}
			return nil
		})
		if stopped {
			runErr = errStreamCancelled
			s.logger.Printf("⚠️  Client left the stream for bot %s after %d chars", botID, answer.Len())
			return
		}
		if err != nil {
			s.logger.Printf("❌ Streaming failed for bot %s: %v", botID, err)
			fail(newChatError(ErrGenerationFailed, botID, err))
			return
		}

		emit(models.DoneEvent(false))
	}
}

// CheckStrictMode runs a question through Answer and reports whether the bot fell back
func (s *ChatService) CheckStrictMode(ctx context.Context, question, botID string) (*models.StrictModeCheck, error) {
	if botID == "" {
		botID = models.DefaultBotID
	}
	result, err := s.Answer(ctx, question, botID)
	if err != nil {
		return nil, err
	}

	previews := make([]models.SourcePreview, 0, len(result.Sources))
	for _, src := range result.Sources {
		previews = append(previews, models.SourcePreview{
			Similarity: src.Similarity,
			Preview:    preview(src.Text, strictPreviewLength),
		})
	}

	return &models.StrictModeCheck{
		Question:       question,
		BotID:          botID,
		Answer:         result.Answer,
		SourcesFound:   len(result.Sources),
		IsFallback:     result.IsFallback(),
		BotConfig:      result.BotConfig,
		SourcesPreview: previews,
	}, nil
}

// HealthCheck reports whether the model backend is reachable
func (s *ChatService) HealthCheck(ctx context.Context) error {
	return s.llm.HealthCheck(ctx)
}

// prepare loads the bot, retrieves fragments and builds the prompt plan
func (s *ChatService) prepare(ctx context.Context, question, botID string) (*models.BotConfig, PromptPlan, error) {
	bot, err := s.loadBot(ctx, botID)
	if err != nil {
		return nil, PromptPlan{}, err
	}

	threshold := bot.RetrievalThreshold
	fragments, err := s.retriever.Search(ctx, question, botID, bot.RetrievalK, &threshold)
	if err != nil {
		if !errors.Is(err, ErrRetrievalFailed) {
			err = newChatError(ErrRetrievalFailed, botID, err)
		}
		return nil, PromptPlan{}, err
	}

	return bot, BuildPrompt(question, fragments, bot), nil
}

func (s *ChatService) loadBot(ctx context.Context, botID string) (*models.BotConfig, error) {
	bot, err := s.bots.Get(ctx, botID)
	if err != nil {
		return nil, newChatError(ErrBotUnavailable, botID, err)
	}
	if !bot.Active {
		return nil, newChatError(ErrBotUnavailable, botID, fmt.Errorf("bot %s is inactive", botID))
	}
	return bot, nil
}

// recordInteraction writes one metrics record. It runs detached from the request
// context so a disconnected client still gets logged; failures are only logged.
func (s *ChatService) recordInteraction(ctx context.Context, botID, question, answer string, sourcesCount int, elapsed time.Duration, runErr error) {
	if s.metrics == nil {
		return
	}

	mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.metricsTimeout)
	defer cancel()

	interaction := models.NewInteraction(botID, question, answer, sourcesCount, elapsed, runErr)
	if err := s.metrics.Record(mctx, interaction); err != nil {
		s.logger.Printf("⚠️  Failed to record interaction for bot %s: %v", botID, err)
	}
}

func generationOptions(bot *models.BotConfig) models.GenerationOptions {
	opts := models.GenerationOptions{Temperature: bot.Temperature}
	if bot.MaxTokens != nil {
		opts.MaxTokens = *bot.MaxTokens
	}
	return opts
}
