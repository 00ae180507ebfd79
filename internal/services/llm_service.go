package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ragbot/internal/models"
)

const (
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultOllamaModel   = "llama3.2"
)

// ollamaChatRequest represents the request format for the Ollama chat API
type ollamaChatRequest struct {
	Model    string               `json:"model"`
	Messages []models.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
	Options  ollamaOptions        `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaChatResponse is one response object; streaming sends one per line
type ollamaChatResponse struct {
	Model   string `json:"model"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done  bool   `json:"done"`
	Error string `json:"error,omitempty"`
}

// LLMService handles communication with an Ollama server
type LLMService struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewLLMService creates a new Ollama-backed LLM service
func NewLLMService(baseURL, model string) *LLMService {
	if baseURL == "" {
		baseURL = DefaultOllamaBaseURL
	}
	if model == "" {
		model = DefaultOllamaModel
	}
	return &LLMService{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // LLMs can be slow
		},
	}
}

// Chat sends the messages to Ollama and returns the full reply
func (s *LLMService) Chat(ctx context.Context, messages []models.ChatMessage, opts models.GenerationOptions) (string, error) {
	resp, err := s.post(ctx, messages, opts, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("ollama error: %s", out.Error)
	}
	return out.Message.Content, nil
}

// ChatStream reads Ollama's newline-delimited JSON stream and forwards each delta
func (s *LLMService) ChatStream(ctx context.Context, messages []models.ChatMessage, opts models.GenerationOptions, onChunk func(string) error) error {
	resp, err := s.post(ctx, messages, opts, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var part ollamaChatResponse
		if err := json.Unmarshal(line, &part); err != nil {
			return fmt.Errorf("failed to parse stream line: %w", err)
		}
		if part.Error != "" {
			return fmt.Errorf("ollama error: %s", part.Error)
		}
		if part.Message.Content != "" {
			if err := onChunk(part.Message.Content); err != nil {
				return err
			}
		}
		if part.Done {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stream: %w", err)
	}
	return nil
}

func (s *LLMService) post(ctx context.Context, messages []models.ChatMessage, opts models.GenerationOptions, stream bool) (*http.Response, error) {
	jsonBody, err := json.Marshal(ollamaChatRequest{
		Model:    s.model,
		Messages: messages,
		Stream:   stream,
		Options: ollamaOptions{
			Temperature: opts.Temperature,
			NumPredict:  opts.MaxTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Ollama: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body))
	}
	return resp, nil
}

// HealthCheck verifies Ollama is running
func (s *LLMService) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}
	return nil
}
