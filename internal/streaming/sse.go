// Package streaming writes chat stream events as Server-Sent Events.
package streaming

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/http"

	"ragbot/internal/models"
)

// ErrFlushNotSupported is returned when the response writer cannot flush
var ErrFlushNotSupported = errors.New("streaming not supported by response writer")

// Frame encodes one event as an SSE frame: "data: <json>\n\n"
func Frame(event models.StreamEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}

	frame := make([]byte, 0, len(payload)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, payload...)
	frame = append(frame, '\n', '\n')
	return frame, nil
}

// Writer sends SSE frames and flushes each one immediately
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewWriter sets the SSE headers on w. Nothing is written until the first event.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrFlushNotSupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	return &Writer{w: w, flusher: flusher}, nil
}

// WriteEvent writes one frame and flushes it to the client
func (sw *Writer) WriteEvent(event models.StreamEvent) error {
	frame, err := Frame(event)
	if err != nil {
		return err
	}
	if _, err := sw.w.Write(frame); err != nil {
		return err
	}
	sw.flusher.Flush()
	return nil
}

// Stream writes every event of events. A write failure stops the iteration,
// which lets the producer see the client as gone.
func (sw *Writer) Stream(events iter.Seq[models.StreamEvent]) error {
	var writeErr error
	for event := range events {
		if writeErr = sw.WriteEvent(event); writeErr != nil {
			break
		}
	}
	return writeErr
}
