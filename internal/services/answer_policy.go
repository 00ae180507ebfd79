package services

import (
	"fmt"
	"strings"

	"ragbot/internal/models"
)

const (
	sourceSeparator = "\n\n---\n\n"
	emptyContext    = "No relevant information was found in the documents."

	strictTemplate = `User question: %s

Available documentation:
%s

IMPORTANT: Answer ONLY based on the documentation provided above. If the information is not in the documentation, say that you do not have that information.`

	flexibleTemplate = `User question: %s

Relevant documentation:
%s

Answer mainly using the documentation, but you may complement with general knowledge if necessary.`
)

// PromptPlan is the outcome of BuildPrompt: either a direct fallback answer
// or a system/user message pair for the model
type PromptPlan struct {
	Fallback     bool
	FallbackText string
	Messages     []models.ChatMessage
	Sources      []models.RetrievedFragment
}

// BuildPrompt decides how a question is answered from its retrieved fragments.
// A strict bot with nothing retrieved gets its fallback text and no prompt.
func BuildPrompt(question string, fragments []models.RetrievedFragment, bot *models.BotConfig) PromptPlan {
	sources := fragments
	if len(sources) > bot.MaxSources {
		sources = sources[:bot.MaxSources]
	}
	if sources == nil {
		sources = []models.RetrievedFragment{}
	}

	if bot.StrictMode && len(sources) == 0 {
		return PromptPlan{
			Fallback:     true,
			FallbackText: bot.FallbackResponse,
			Sources:      sources,
		}
	}

	template := flexibleTemplate
	if bot.StrictMode {
		template = strictTemplate
	}

	return PromptPlan{
		Messages: []models.ChatMessage{
			{Role: models.RoleSystem, Content: bot.SystemPrompt},
			{Role: models.RoleUser, Content: fmt.Sprintf(template, question, renderContext(sources))},
		},
		Sources: sources,
	}
}

func renderContext(sources []models.RetrievedFragment) string {
	if len(sources) == 0 {
		return emptyContext
	}

	blocks := make([]string, len(sources))
	for i, src := range sources {
		blocks[i] = fmt.Sprintf("[Source %d - Similarity: %.1f%%]\n%s", i+1, src.Similarity*100, src.Text)
	}
	return strings.Join(blocks, sourceSeparator)
}
