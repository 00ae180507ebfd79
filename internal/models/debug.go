package models

// InspectedChunk is one raw retrieval result annotated for tuning
type InspectedChunk struct {
	Index           int                    `json:"index"`
	Similarity      float64                `json:"similarity"`
	Distance        float64                `json:"distance"`
	PassesThreshold bool                   `json:"passes_threshold"`
	TextPreview     string                 `json:"text_preview"`
	FullText        string                 `json:"full_text"`
	Metadata        map[string]interface{} `json:"metadata"`
}

// ThresholdRecommendation summarises the similarity distribution of a query
type ThresholdRecommendation struct {
	AvgSimilarity      float64 `json:"avg_similarity"`
	MinSimilarity      float64 `json:"min_similarity"`
	MaxSimilarity      float64 `json:"max_similarity"`
	SuggestedThreshold float64 `json:"suggested_threshold"`
}

// RetrievalInspection is the response of the retrieval debug endpoint
type RetrievalInspection struct {
	Query           string                  `json:"query"`
	BotID           string                  `json:"bot_id"`
	Threshold       *float64                `json:"threshold_used"`
	K               int                     `json:"k"`
	TotalResults    int                     `json:"total_chunks_found"`
	PassingResults  int                     `json:"passing_chunks"`
	Chunks          []InspectedChunk        `json:"chunks"`
	Recommendations ThresholdRecommendation `json:"recommendations"`
}

// StrictModeCheck is the response of the strict-mode test endpoint
type StrictModeCheck struct {
	Question       string          `json:"question"`
	BotID          string          `json:"bot_id"`
	Answer         string          `json:"answer"`
	SourcesFound   int             `json:"sources_found"`
	IsFallback     bool            `json:"is_fallback"`
	BotConfig      BotSnapshot     `json:"bot_config"`
	SourcesPreview []SourcePreview `json:"sources"`
}

// SourcePreview is a shortened source shown by the strict-mode test endpoint
type SourcePreview struct {
	Similarity float64 `json:"similarity"`
	Preview    string  `json:"text_preview"`
}
