package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"ragbot/internal/models"
	"ragbot/internal/repositories"
)

const (
	popularQuestionWindow    = 1000
	popularQuestionKeyLength = 50
	keywordQuestionWindow    = 1000
	dateLayout               = "2006-01-02"
)

// AnalyticsService computes usage statistics from the interaction log
type AnalyticsService struct {
	repo     repositories.AnalyticsRepository
	keywords *KeywordExtractor
	logger   *log.Logger
	now      func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo repositories.AnalyticsRepository, logger *log.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:     repo,
		keywords: NewKeywordExtractor(),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// BotStats summarises one bot's interactions over the last days
func (s *AnalyticsService) BotStats(ctx context.Context, botID string, days int) (*models.BotStats, error) {
	interactions, err := s.repo.InteractionsSince(ctx, s.now().AddDate(0, 0, -days))
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}

	stats := &models.BotStats{
		BotID:          botID,
		PeriodDays:     days,
		DailyBreakdown: []models.DailyCount{},
	}

	var successful int
	var responseTime, sources, qLen, aLen float64
	var own []*models.Interaction
	for _, in := range interactions {
		if in.BotID != botID {
			continue
		}
		own = append(own, in)
		if in.Success {
			successful++
		}
		responseTime += in.ResponseTimeMs
		sources += float64(in.SourcesCount)
		qLen += float64(in.QuestionLength)
		aLen += float64(in.AnswerLength)
	}

	total := len(own)
	if total == 0 {
		return stats, nil
	}

	n := float64(total)
	stats.TotalInteractions = total
	stats.SuccessRate = float64(successful) / n * 100
	stats.AvgResponseTimeMs = responseTime / n
	stats.AvgSourcesCount = sources / n
	stats.AvgQuestionLength = qLen / n
	stats.AvgAnswerLength = aLen / n
	stats.DailyBreakdown = dailyBreakdown(own)
	return stats, nil
}

// GlobalStats summarises all interactions over the last days
func (s *AnalyticsService) GlobalStats(ctx context.Context, days int) (*models.GlobalStats, error) {
	interactions, err := s.repo.InteractionsSince(ctx, s.now().AddDate(0, 0, -days))
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}

	stats := &models.GlobalStats{
		PeriodDays:        days,
		TotalInteractions: len(interactions),
		InteractionsByBot: make(map[string]int),
		DailyBreakdown:    dailyBreakdown(interactions),
	}
	if len(interactions) == 0 {
		return stats, nil
	}

	var successful int
	var responseTime float64
	for _, in := range interactions {
		stats.InteractionsByBot[in.BotID]++
		if in.Success {
			successful++
		}
		responseTime += in.ResponseTimeMs
	}

	n := float64(len(interactions))
	stats.TotalBotsUsed = len(stats.InteractionsByBot)
	stats.SuccessRate = float64(successful) / n * 100
	stats.AvgResponseTimeMs = responseTime / n
	return stats, nil
}

// PopularQuestions groups recent questions by their normalised first 50
// characters and returns the largest groups
func (s *AnalyticsService) PopularQuestions(ctx context.Context, botID string, limit int) ([]models.PopularQuestion, error) {
	interactions, err := s.recentForBot(ctx, botID, popularQuestionWindow)
	if err != nil {
		return nil, err
	}

	type group struct {
		sample       string
		count        int
		responseTime float64
	}
	groups := make(map[string]*group)
	var order []string
	for _, in := range interactions {
		key := questionKey(in.Question)
		g, ok := groups[key]
		if !ok {
			g = &group{sample: in.Question}
			groups[key] = g
			order = append(order, key)
		}
		g.count++
		g.responseTime += in.ResponseTimeMs
	}

	popular := make([]models.PopularQuestion, 0, len(order))
	for _, key := range order {
		g := groups[key]
		popular = append(popular, models.PopularQuestion{
			QuestionSample:    g.sample,
			Count:             g.count,
			AvgResponseTimeMs: g.responseTime / float64(g.count),
		})
	}

	// stable keeps first-seen order among equal counts
	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].Count > popular[j].Count
	})

	if limit > 0 && len(popular) > limit {
		popular = popular[:limit]
	}
	return popular, nil
}

// Keywords builds a word cloud from recent questions
func (s *AnalyticsService) Keywords(ctx context.Context, botID string, limit int) ([]models.KeywordWeight, error) {
	interactions, err := s.recentForBot(ctx, botID, keywordQuestionWindow)
	if err != nil {
		return nil, err
	}

	questions := make([]string, len(interactions))
	for i, in := range interactions {
		questions[i] = in.Question
	}

	keywords, err := s.keywords.Extract(questions, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to extract keywords: %w", err)
	}
	return keywords, nil
}

// Cleanup deletes records older than daysToKeep days
func (s *AnalyticsService) Cleanup(ctx context.Context, daysToKeep int) (int, error) {
	removed, err := s.repo.DeleteBefore(ctx, s.now().AddDate(0, 0, -daysToKeep))
	if err != nil {
		return removed, fmt.Errorf("failed to clean up analytics: %w", err)
	}
	s.logger.Printf("🧹 Removed %d analytics records older than %d days", removed, daysToKeep)
	return removed, nil
}

// recentForBot returns the newest n interactions, of one bot when botID is set
func (s *AnalyticsService) recentForBot(ctx context.Context, botID string, n int) ([]*models.Interaction, error) {
	if botID == "" {
		interactions, err := s.repo.RecentInteractions(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("failed to load interactions: %w", err)
		}
		return interactions, nil
	}

	all, err := s.repo.InteractionsSince(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}
	own := make([]*models.Interaction, 0, len(all))
	for _, in := range all {
		if in.BotID == botID {
			own = append(own, in)
		}
	}
	if len(own) > n {
		own = own[len(own)-n:]
	}
	return own, nil
}

func questionKey(question string) string {
	runes := []rune(question)
	if len(runes) > popularQuestionKeyLength {
		runes = runes[:popularQuestionKeyLength]
	}
	return strings.TrimSpace(strings.ToLower(string(runes)))
}

// dailyBreakdown counts interactions per UTC day, oldest day first
func dailyBreakdown(interactions []*models.Interaction) []models.DailyCount {
	counts := make(map[string]int)
	for _, in := range interactions {
		counts[in.Timestamp.UTC().Format(dateLayout)]++
	}

	out := make([]models.DailyCount, 0, len(counts))
	for date, count := range counts {
		out = append(out, models.DailyCount{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
