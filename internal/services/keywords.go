package services

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"

	"ragbot/internal/models"
)

// KeywordExtractor handles keyword extraction from user questions
type KeywordExtractor struct {
	// Common stop words to filter out
	stopWords map[string]bool
	// Minimum keyword length
	minLength int
}

// NewKeywordExtractor creates a new keyword extractor
func NewKeywordExtractor() *KeywordExtractor {
	stopWords := map[string]bool{
		"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
		"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
		"with": true, "by": true, "is": true, "are": true, "was": true, "were": true,
		"be": true, "been": true, "have": true, "has": true, "had": true, "do": true,
		"does": true, "did": true, "will": true, "would": true, "could": true, "should": true,
		"this": true, "that": true, "these": true, "those": true, "i": true, "you": true,
		"he": true, "she": true, "it": true, "we": true, "they": true, "my": true,
		"your": true, "his": true, "her": true, "its": true, "our": true, "their": true,
		"what": true, "how": true, "can": true, "me": true, "there": true, "which": true,
	}

	return &KeywordExtractor{
		stopWords: stopWords,
		minLength: 2,
	}
}

// Extract scores the words of texts and returns the top limit keywords, heaviest
// first. Weights are normalised so the top keyword weighs 1.
func (ke *KeywordExtractor) Extract(texts []string, limit int) ([]models.KeywordWeight, error) {
	type entry struct {
		freq  int
		score float64
		tag   string
	}
	words := make(map[string]*entry)

	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		doc, err := prose.NewDocument(text, prose.WithExtraction(false))
		if err != nil {
			return nil, err
		}

		for _, tok := range doc.Tokens() {
			word := strings.ToLower(tok.Text)
			if ke.shouldSkipWord(word, tok.Tag) {
				continue
			}
			score := ke.calculateScore(tok.Tag)
			if e, ok := words[word]; ok {
				e.freq++
				e.score += score
			} else {
				words[word] = &entry{freq: 1, score: score, tag: tok.Tag}
			}
		}
	}

	keywords := make([]models.KeywordWeight, 0, len(words))
	var top float64
	for word, e := range words {
		// Final score calculation (frequency * base score)
		weight := e.score * float64(e.freq)
		top = max(top, weight)
		keywords = append(keywords, models.KeywordWeight{
			Word:      word,
			Frequency: e.freq,
			Weight:    weight,
			PosTag:    e.tag,
		})
	}

	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Weight != keywords[j].Weight {
			return keywords[i].Weight > keywords[j].Weight
		}
		return keywords[i].Word < keywords[j].Word
	})

	if limit > 0 && len(keywords) > limit {
		keywords = keywords[:limit]
	}
	if top > 0 {
		for i := range keywords {
			keywords[i].Weight /= top
		}
	}
	return keywords, nil
}

// shouldSkipWord determines if a word should be filtered out
func (ke *KeywordExtractor) shouldSkipWord(word, posTag string) bool {
	if len([]rune(word)) < ke.minLength {
		return true
	}
	if ke.stopWords[word] {
		return true
	}
	// Skip pure numbers or punctuation
	if ke.isPureNumber(word) || ke.isPunctuation(word) {
		return true
	}

	skipTags := map[string]bool{
		"DT":   true, // determiner
		"IN":   true, // preposition
		"TO":   true, // to
		"CC":   true, // coordinating conjunction
		"PRP":  true, // personal pronoun
		"PRP$": true, // possessive pronoun
		"WP":   true, // wh-pronoun
		"WDT":  true, // wh-determiner
		"WRB":  true, // wh-adverb
		"MD":   true, // modal
	}
	return skipTags[posTag]
}

// calculateScore assigns importance based on POS tag
func (ke *KeywordExtractor) calculateScore(posTag string) float64 {
	switch {
	case posTag == "NNP" || posTag == "NNPS":
		return 2.0
	case strings.HasPrefix(posTag, "NN"):
		return 1.5
	case strings.HasPrefix(posTag, "JJ"):
		return 1.3
	case strings.HasPrefix(posTag, "VB"):
		return 1.2
	case strings.HasPrefix(posTag, "RB"):
		return 0.8
	}
	return 1.0
}

func (ke *KeywordExtractor) isPureNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

func (ke *KeywordExtractor) isPunctuation(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return len(s) > 0
}
