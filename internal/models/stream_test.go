package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamEvent_MarshalJSON(t *testing.T) {
	snap := BotSnapshot{BotID: "b1", Name: "Bot", Temperature: 0.7, StrictMode: true, Threshold: 0.3}

	tests := []struct {
		name  string
		event StreamEvent
		want  string
	}{
		{
			name:  "metadata with no sources still carries an empty list",
			event: MetadataEvent(nil, snap),
			want:  `{"type":"metadata","sources":[],"bot_config":{"bot_id":"b1","name":"Bot","temperature":0.7,"strict_mode":true,"threshold":0.3,"sources_found":0}}`,
		},
		{
			name:  "chunk",
			event: ChunkEvent("Hello"),
			want:  `{"type":"chunk","content":"Hello"}`,
		},
		{
			name:  "plain done omits fallback",
			event: DoneEvent(false),
			want:  `{"type":"done"}`,
		},
		{
			name:  "fallback done",
			event: DoneEvent(true),
			want:  `{"type":"done","fallback":true}`,
		},
		{
			name:  "error",
			event: ErrorEvent("boom"),
			want:  `{"type":"error","message":"boom"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.event)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestStreamEvent_MarshalUnknownType(t *testing.T) {
	_, err := json.Marshal(StreamEvent{Type: "bogus"})
	assert.Error(t, err)
}

func TestStreamEvent_IsTerminal(t *testing.T) {
	assert.False(t, MetadataEvent(nil, BotSnapshot{}).IsTerminal())
	assert.False(t, ChunkEvent("x").IsTerminal())
	assert.True(t, DoneEvent(false).IsTerminal())
	assert.True(t, ErrorEvent("x").IsTerminal())
}
