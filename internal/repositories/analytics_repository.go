package repositories

import (
	"context"
	"time"

	"ragbot/internal/models"
)

// AnalyticsRepository stores interaction and upload records.
// Records are kept in arrival order and capped to a maximum count.
type AnalyticsRepository interface {
	// Record appends one interaction; it is the chat path's metrics sink
	Record(ctx context.Context, interaction *models.Interaction) error
	RecordUpload(ctx context.Context, upload *models.DocumentUpload) error

	// InteractionsSince returns interactions with a timestamp after since, oldest first
	InteractionsSince(ctx context.Context, since time.Time) ([]*models.Interaction, error)
	// RecentInteractions returns at most n of the newest interactions, oldest first
	RecentInteractions(ctx context.Context, n int) ([]*models.Interaction, error)
	UploadsSince(ctx context.Context, since time.Time) ([]*models.DocumentUpload, error)

	// DeleteBefore removes interactions and uploads older than cutoff and reports how many went
	DeleteBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// AnalyticsRepositoryError represents errors from the analytics repository
type AnalyticsRepositoryError struct {
	Operation string
	Err       error
	Message   string
}

func (e *AnalyticsRepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Operation + ": " + e.Err.Error()
	}
	return e.Operation + ": unknown error"
}

func (e *AnalyticsRepositoryError) Unwrap() error {
	return e.Err
}

// NewAnalyticsRepositoryError creates a new analytics repository error
func NewAnalyticsRepositoryError(operation string, err error, message string) *AnalyticsRepositoryError {
	return &AnalyticsRepositoryError{
		Operation: operation,
		Err:       err,
		Message:   message,
	}
}
