package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultEmbedBatchSize = 32

// EmbeddingClient talks to the embedding sidecar over HTTP
type EmbeddingClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
	retries    int
	backoff    time.Duration
}

// NewEmbeddingClient creates a new embedding sidecar client with default settings
func NewEmbeddingClient(baseURL, model string) *EmbeddingClient {
	return NewEmbeddingClientWithOptions(baseURL, model, 60*time.Second, 3)
}

// NewEmbeddingClientWithOptions creates a client with custom settings
func NewEmbeddingClientWithOptions(baseURL, model string, timeout time.Duration, retries int) *EmbeddingClient {
	return &EmbeddingClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		retries: retries,
		backoff: time.Second,
	}
}

// embedQueryRequest represents a request for a single query embedding
type embedQueryRequest struct {
	Query string `json:"query"`
	Model string `json:"model,omitempty"`
}

// embedBatchRequest represents a request to embed several texts
type embedBatchRequest struct {
	Texts     []string `json:"texts"`
	Model     string   `json:"model,omitempty"`
	BatchSize int      `json:"batch_size"`
}

// EmbeddingResponse represents the response from the embed/query endpoint
type EmbeddingResponse struct {
	Embedding []float32 `json:"embedding"`
	Dimension int       `json:"dimension"`
	Model     string    `json:"model"`
}

// EmbedBatchResponse represents the response from the embed/batch endpoint
type EmbedBatchResponse struct {
	Embeddings      [][]float32 `json:"embeddings"`
	Dimension       int         `json:"dimension"`
	Model           string      `json:"model"`
	TotalEmbeddings int         `json:"total_embeddings"`
}

// doRequest performs an HTTP request with retry logic
func (c *EmbeddingClient) doRequest(ctx context.Context, method, endpoint string, body interface{}) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			// Exponential backoff
			backoff := time.Duration(attempt*attempt) * c.backoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.makeRequest(ctx, method, endpoint, body)
		if err == nil && resp.StatusCode < 500 {
			// Success or client error (don't retry 4xx)
			return resp, nil
		}

		lastErr = err
		if resp != nil {
			lastErr = fmt.Errorf("HTTP %d", resp.StatusCode)
			resp.Body.Close()
		}
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", c.retries, lastErr)
}

// makeRequest creates and executes an HTTP request
func (c *EmbeddingClient) makeRequest(ctx context.Context, method, endpoint string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// parseResponse reads and parses JSON response
func parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// EmbedQuery generates the embedding for a search query
func (c *EmbeddingClient) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/embed/query", &embedQueryRequest{Query: query, Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("embed query request failed: %w", err)
	}

	var result EmbeddingResponse
	if err := parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if len(result.Embedding) == 0 {
		return nil, fmt.Errorf("embedding service returned an empty vector")
	}
	return result.Embedding, nil
}

// EmbedDocuments generates embeddings for document chunks, in input order
func (c *EmbeddingClient) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	req := &embedBatchRequest{
		Texts:     texts,
		Model:     c.model,
		BatchSize: defaultEmbedBatchSize,
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/embed/batch", req)
	if err != nil {
		return nil, fmt.Errorf("embed batch request failed: %w", err)
	}

	var result EmbedBatchResponse
	if err := parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(result.Embeddings))
	}
	return result.Embeddings, nil
}

// HealthCheck checks if the embedding service reports healthy
func (c *EmbeddingClient) HealthCheck(ctx context.Context) (bool, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/embed/health", nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, err
	}

	status, ok := result["status"].(string)
	return ok && status == "healthy", nil
}
