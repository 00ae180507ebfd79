package models

import (
	"time"
)

// Interaction is the metrics record written once per chat request
type Interaction struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	BotID          string    `json:"bot_id"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	SourcesCount   int       `json:"sources_count"`
	ResponseTimeMs float64   `json:"response_time_ms"`
	Success        bool      `json:"success"`
	Error          string    `json:"error,omitempty"`
	QuestionLength int       `json:"question_length"`
	AnswerLength   int       `json:"answer_length"`
}

// NewInteraction fills the derived length fields
func NewInteraction(botID, question, answer string, sourcesCount int, elapsed time.Duration, err error) *Interaction {
	in := &Interaction{
		Timestamp:      time.Now().UTC(),
		BotID:          botID,
		Question:       question,
		Answer:         answer,
		SourcesCount:   sourcesCount,
		ResponseTimeMs: float64(elapsed.Microseconds()) / 1000.0,
		Success:        err == nil,
		QuestionLength: len([]rune(question)),
		AnswerLength:   len([]rune(answer)),
	}
	if err != nil {
		in.Error = err.Error()
	}
	return in
}

// DocumentUpload records a completed ingestion
type DocumentUpload struct {
	Timestamp   time.Time `json:"timestamp"`
	BotID       string    `json:"bot_id"`
	DocumentID  string    `json:"document_id"`
	Filename    string    `json:"filename"`
	ChunksCount int       `json:"chunks_count"`
}

// DailyCount is the number of interactions on one calendar day (UTC)
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// BotStats aggregates a bot's interactions over a period
type BotStats struct {
	BotID             string       `json:"bot_id"`
	PeriodDays        int          `json:"period_days"`
	TotalInteractions int          `json:"total_interactions"`
	SuccessRate       float64      `json:"success_rate"`
	AvgResponseTimeMs float64      `json:"avg_response_time_ms"`
	AvgSourcesCount   float64      `json:"avg_sources_count"`
	AvgQuestionLength float64      `json:"avg_question_length"`
	AvgAnswerLength   float64      `json:"avg_answer_length"`
	DailyBreakdown    []DailyCount `json:"daily_breakdown"`
}

// GlobalStats aggregates all interactions over a period
type GlobalStats struct {
	PeriodDays        int            `json:"period_days"`
	TotalInteractions int            `json:"total_interactions"`
	TotalBotsUsed     int            `json:"total_bots_used"`
	SuccessRate       float64        `json:"success_rate"`
	InteractionsByBot map[string]int `json:"interactions_by_bot"`
	AvgResponseTimeMs float64        `json:"avg_response_time_ms"`
	DailyBreakdown    []DailyCount   `json:"daily_breakdown"`
}

// PopularQuestion is a group of questions sharing the same normalized prefix
type PopularQuestion struct {
	QuestionSample    string  `json:"question_sample"`
	Count             int     `json:"count"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
}

// KeywordWeight is one entry of the question word cloud
type KeywordWeight struct {
	Word      string  `json:"word"`
	Frequency int     `json:"frequency"`
	Weight    float64 `json:"weight"`
	PosTag    string  `json:"pos_tag,omitempty"`
}
