// Package integration_test drives a running server end to end: bot creation,
// document upload, chat, streaming chat and analytics.
//
// Prerequisites:
// - Redis, ChromaDB, the embedding sidecar and the LLM backend reachable by the server
// - Server running on RAGBOT_URL (default http://localhost:8080)
//
// Run with: go test -v ./internal/integration_test/... -tags=integration
//go:build integration

package integration_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimeout = 120 * time.Second

func serverURL() string {
	if v := os.Getenv("RAGBOT_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func doJSON(t *testing.T, ctx context.Context, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverURL()+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func uploadText(t *testing.T, ctx context.Context, botID, filename, content string) map[string]interface{} {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("bot_id", botID))
	require.NoError(t, mw.Close())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL()+"/api/v1/documents/upload", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestChatFlowIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	if status := doJSON(t, ctx, http.MethodGet, "/health", nil, nil); status != http.StatusOK {
		t.Skipf("server not healthy at %s (status %d)", serverURL(), status)
	}

	botID := fmt.Sprintf("itest-%d", time.Now().UnixNano())
	threshold := 0.0
	var bot map[string]interface{}
	status := doJSON(t, ctx, http.MethodPost, "/api/v1/bots", map[string]interface{}{
		"bot_id":              botID,
		"name":                "Integration bot",
		"retrieval_threshold": threshold,
	}, &bot)
	require.Equal(t, http.StatusCreated, status)
	t.Cleanup(func() {
		doJSON(t, context.Background(), http.MethodDelete, "/api/v1/bots/"+botID, nil, nil)
	})

	uploaded := uploadText(t, ctx, botID, "refunds.txt",
		"Refunds are processed within five business days. Contact support to start a refund.")
	doc := uploaded["document"].(map[string]interface{})
	documentID := doc["document_id"].(string)
	assert.Greater(t, doc["chunk_count"].(float64), float64(0))
	t.Cleanup(func() {
		doJSON(t, context.Background(), http.MethodDelete, "/api/v1/documents/"+documentID, nil, nil)
	})
	t.Logf("✅ Uploaded %s", documentID)

	var answer map[string]interface{}
	status = doJSON(t, ctx, http.MethodPost, "/api/v1/chat", map[string]string{
		"question": "How long do refunds take?",
		"bot_id":   botID,
	}, &answer)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, answer["answer"])
	assert.NotEmpty(t, answer["sources"])
	t.Logf("✅ Answer: %v", answer["answer"])

	// Streaming: metadata first, done last
	data, err := json.Marshal(map[string]string{"question": "How do I start a refund?", "bot_id": botID})
	require.NoError(t, err)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL()+"/api/v1/chat/stream", bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	var types []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
		types = append(types, ev.Type)
	}
	require.NotEmpty(t, types)
	assert.Equal(t, "metadata", types[0])
	assert.Equal(t, "done", types[len(types)-1])
	t.Logf("✅ Stream delivered %d events", len(types))

	var stats map[string]interface{}
	status = doJSON(t, ctx, http.MethodGet, "/api/v1/analytics/bot/"+botID+"?days=1", nil, &stats)
	require.Equal(t, http.StatusOK, status)
	botStats := stats["stats"].(map[string]interface{})
	assert.GreaterOrEqual(t, botStats["total_interactions"].(float64), float64(2))
	t.Logf("✅ Analytics recorded %v interactions", botStats["total_interactions"])
}
