package services

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the chat path. Match them with errors.Is.
var (
	ErrBotUnavailable   = errors.New("bot unavailable")
	ErrRetrievalFailed  = errors.New("retrieval failed")
	ErrGenerationFailed = errors.New("generation failed")
)

// ChatError is a failure of one chat request, tagged with its kind
type ChatError struct {
	Kind  error
	BotID string
	Err   error
}

func (e *ChatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v (bot: %s)", e.Kind, e.BotID)
	}
	return fmt.Sprintf("%v (bot: %s): %v", e.Kind, e.BotID, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As
func (e *ChatError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newChatError(kind error, botID string, err error) *ChatError {
	return &ChatError{Kind: kind, BotID: botID, Err: err}
}
