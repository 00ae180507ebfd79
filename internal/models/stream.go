package models

import "encoding/json"

// StreamEventType identifies the kind of a streamed chat event
type StreamEventType string

const (
	StreamEventMetadata StreamEventType = "metadata"
	StreamEventChunk    StreamEventType = "chunk"
	StreamEventDone     StreamEventType = "done"
	StreamEventError    StreamEventType = "error"
)

// StreamEvent is one event of a streamed answer.
// Only the fields belonging to Type are encoded.
type StreamEvent struct {
	Type      StreamEventType
	Sources   []RetrievedFragment // metadata
	BotConfig *BotSnapshot        // metadata
	Content   string              // chunk
	Fallback  bool                // done
	Message   string              // error
}

// MetadataEvent announces the sources that will back the answer
func MetadataEvent(sources []RetrievedFragment, bot BotSnapshot) StreamEvent {
	return StreamEvent{Type: StreamEventMetadata, Sources: sources, BotConfig: &bot}
}

// ChunkEvent carries one text delta
func ChunkEvent(content string) StreamEvent {
	return StreamEvent{Type: StreamEventChunk, Content: content}
}

// DoneEvent terminates a successful stream
func DoneEvent(fallback bool) StreamEvent {
	return StreamEvent{Type: StreamEventDone, Fallback: fallback}
}

// ErrorEvent terminates a failed stream
func ErrorEvent(message string) StreamEvent {
	return StreamEvent{Type: StreamEventError, Message: message}
}

// IsTerminal reports whether no further events follow this one
func (e StreamEvent) IsTerminal() bool {
	return e.Type == StreamEventDone || e.Type == StreamEventError
}

type metadataPayload struct {
	Type      StreamEventType     `json:"type"`
	Sources   []RetrievedFragment `json:"sources"`
	BotConfig *BotSnapshot        `json:"bot_config"`
}

type chunkPayload struct {
	Type    StreamEventType `json:"type"`
	Content string          `json:"content"`
}

type donePayload struct {
	Type     StreamEventType `json:"type"`
	Fallback bool            `json:"fallback,omitempty"`
}

type errorPayload struct {
	Type    StreamEventType `json:"type"`
	Message string          `json:"message"`
}

// MarshalJSON encodes the event in its wire shape
func (e StreamEvent) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case StreamEventMetadata:
		sources := e.Sources
		if sources == nil {
			sources = []RetrievedFragment{}
		}
		return json.Marshal(metadataPayload{Type: e.Type, Sources: sources, BotConfig: e.BotConfig})
	case StreamEventChunk:
		return json.Marshal(chunkPayload{Type: e.Type, Content: e.Content})
	case StreamEventDone:
		return json.Marshal(donePayload{Type: e.Type, Fallback: e.Fallback})
	case StreamEventError:
		return json.Marshal(errorPayload{Type: e.Type, Message: e.Message})
	default:
		return nil, &ValidationError{Field: "type", Message: "unknown stream event type: " + string(e.Type)}
	}
}

// UnmarshalJSON decodes any wire shape back into a StreamEvent
func (e *StreamEvent) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type      StreamEventType     `json:"type"`
		Sources   []RetrievedFragment `json:"sources"`
		BotConfig *BotSnapshot        `json:"bot_config"`
		Content   string              `json:"content"`
		Fallback  bool                `json:"fallback"`
		Message   string              `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = StreamEvent{
		Type:      raw.Type,
		Sources:   raw.Sources,
		BotConfig: raw.BotConfig,
		Content:   raw.Content,
		Fallback:  raw.Fallback,
		Message:   raw.Message,
	}
	return nil
}
