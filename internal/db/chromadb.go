package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// ErrCollectionNotFound is returned when a named collection does not exist
var ErrCollectionNotFound = errors.New("collection not found")

// ChromaDBClient wraps HTTP calls to the ChromaDB v2 API
// This avoids compatibility issues with the official Go client library
type ChromaDBClient struct {
	hostURL    string // http://host:port
	baseURL    string // hostURL + /api/v2/tenants/{tenant}/databases/{database}
	httpClient *http.Client
	tenant     string
	database   string

	mu            sync.RWMutex
	collectionIDs map[string]string
}

// ChromaDBConfig holds configuration for ChromaDB connection
type ChromaDBConfig struct {
	Host     string
	Port     int
	Tenant   string // default: "default_tenant"
	Database string // default: "default_database"
	Timeout  time.Duration
}

// Collection represents a ChromaDB collection
type Collection struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Metadata map[string]interface{} `json:"metadata"`
}

// GetResponse represents the response from a get request
type GetResponse struct {
	IDs       []string                 `json:"ids"`
	Documents []string                 `json:"documents"`
	Metadatas []map[string]interface{} `json:"metadatas"`
}

// QueryResponse represents the response from a query.
// Outer slices are per query embedding, inner slices are ranked by ascending distance.
type QueryResponse struct {
	IDs       [][]string                 `json:"ids"`
	Documents [][]string                 `json:"documents"`
	Metadatas [][]map[string]interface{} `json:"metadatas"`
	Distances [][]float64                `json:"distances"`
}

// NewChromaDBClient creates a new ChromaDB client with v2 API support
func NewChromaDBClient(config ChromaDBConfig) *ChromaDBClient {
	hostURL := fmt.Sprintf("http://%s:%d", config.Host, config.Port)
	return newChromaDBClient(hostURL, config)
}

// NewChromaDBClientWithURL creates a client against an explicit base URL such as an httptest server
func NewChromaDBClientWithURL(hostURL string, config ChromaDBConfig) *ChromaDBClient {
	return newChromaDBClient(hostURL, config)
}

func newChromaDBClient(hostURL string, config ChromaDBConfig) *ChromaDBClient {
	if config.Tenant == "" {
		config.Tenant = "default_tenant"
	}
	if config.Database == "" {
		config.Database = "default_database"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &ChromaDBClient{
		hostURL: hostURL,
		baseURL: fmt.Sprintf("%s/api/v2/tenants/%s/databases/%s",
			hostURL, config.Tenant, config.Database),
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		tenant:        config.Tenant,
		database:      config.Database,
		collectionIDs: make(map[string]string),
	}
}

// do sends a JSON request and decodes a JSON response into out (if non-nil).
// Any status outside okStatuses is returned as an error carrying the response body.
func (c *ChromaDBClient) do(ctx context.Context, method, url string, payload, out interface{}, okStatuses ...int) (int, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	ok := len(okStatuses) == 0 && resp.StatusCode == http.StatusOK
	for _, s := range okStatuses {
		if resp.StatusCode == s {
			ok = true
			break
		}
	}
	if !ok {
		raw, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// Heartbeat checks if ChromaDB is alive
func (c *ChromaDBClient) Heartbeat(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodGet, c.hostURL+"/api/v2/heartbeat", nil, nil); err != nil {
		return fmt.Errorf("heartbeat failed: %w", err)
	}
	return nil
}

// DefaultDistanceSpace is Chroma's own default; retrieval thresholds assume squared L2
const DefaultDistanceSpace = "l2"

// GetOrCreateCollection returns the named collection, creating it when missing.
// Without metadata the collection uses DefaultDistanceSpace.
func (c *ChromaDBClient) GetOrCreateCollection(ctx context.Context, name string, metadata map[string]interface{}) (*Collection, error) {
	if metadata == nil {
		metadata = map[string]interface{}{
			"hnsw:space": DefaultDistanceSpace,
		}
	}

	payload := map[string]interface{}{
		"name":          name,
		"metadata":      metadata,
		"get_or_create": true,
	}

	var collection Collection
	if _, err := c.do(ctx, http.MethodPost, c.baseURL+"/collections", payload, &collection, http.StatusOK, http.StatusCreated); err != nil {
		return nil, fmt.Errorf("get or create collection failed: %w", err)
	}
	c.remember(collection.Name, collection.ID)
	return &collection, nil
}

// GetCollection retrieves a collection by name
func (c *ChromaDBClient) GetCollection(ctx context.Context, name string) (*Collection, error) {
	var collection Collection
	status, err := c.do(ctx, http.MethodGet, c.baseURL+"/collections/"+name, nil, &collection)
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get collection failed: %w", err)
	}
	c.remember(collection.Name, collection.ID)
	return &collection, nil
}

// AddDocuments adds documents to a collection
func (c *ChromaDBClient) AddDocuments(ctx context.Context, collectionName string, ids []string, documents []string, embeddings [][]float32, metadatas []map[string]interface{}) error {
	id, err := c.collectionID(ctx, collectionName)
	if err != nil {
		return err
	}

	payload := map[string]interface{}{
		"ids":        ids,
		"documents":  documents,
		"embeddings": embeddings,
	}
	if metadatas != nil {
		payload["metadatas"] = metadatas
	}

	url := fmt.Sprintf("%s/collections/%s/add", c.baseURL, id)
	if _, err := c.do(ctx, http.MethodPost, url, payload, nil, http.StatusOK, http.StatusCreated); err != nil {
		return fmt.Errorf("add documents failed: %w", err)
	}
	return nil
}

// Query searches for the nResults nearest records matching where
func (c *ChromaDBClient) Query(ctx context.Context, collectionName string, queryEmbeddings [][]float32, nResults int, where map[string]interface{}) (*QueryResponse, error) {
	id, err := c.collectionID(ctx, collectionName)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"query_embeddings": queryEmbeddings,
		"n_results":        nResults,
		"include":          []string{"documents", "metadatas", "distances"},
	}
	if where != nil {
		payload["where"] = where
	}

	var queryResp QueryResponse
	url := fmt.Sprintf("%s/collections/%s/query", c.baseURL, id)
	if _, err := c.do(ctx, http.MethodPost, url, payload, &queryResp); err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &queryResp, nil
}

// GetDocuments retrieves records from a collection matching where.
// limit <= 0 fetches everything.
func (c *ChromaDBClient) GetDocuments(ctx context.Context, collectionName string, where map[string]interface{}, limit int, offset int) (*GetResponse, error) {
	id, err := c.collectionID(ctx, collectionName)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"include": []string{"documents", "metadatas"},
	}
	if len(where) > 0 {
		payload["where"] = where
	}
	if limit > 0 {
		payload["limit"] = limit
	} else {
		payload["limit"] = 100000
	}
	if offset > 0 {
		payload["offset"] = offset
	}

	var getResp GetResponse
	url := fmt.Sprintf("%s/collections/%s/get", c.baseURL, id)
	if _, err := c.do(ctx, http.MethodPost, url, payload, &getResp); err != nil {
		return nil, fmt.Errorf("get documents failed: %w", err)
	}
	return &getResp, nil
}

// UpdateMetadatas replaces the metadata of the given records
func (c *ChromaDBClient) UpdateMetadatas(ctx context.Context, collectionName string, ids []string, metadatas []map[string]interface{}) error {
	id, err := c.collectionID(ctx, collectionName)
	if err != nil {
		return err
	}

	payload := map[string]interface{}{
		"ids":       ids,
		"metadatas": metadatas,
	}

	url := fmt.Sprintf("%s/collections/%s/update", c.baseURL, id)
	if _, err := c.do(ctx, http.MethodPost, url, payload, nil); err != nil {
		return fmt.Errorf("update documents failed: %w", err)
	}
	return nil
}

// DeleteDocuments deletes records from a collection by IDs
func (c *ChromaDBClient) DeleteDocuments(ctx context.Context, collectionName string, ids []string) error {
	id, err := c.collectionID(ctx, collectionName)
	if err != nil {
		return err
	}

	payload := map[string]interface{}{
		"ids": ids,
	}

	url := fmt.Sprintf("%s/collections/%s/delete", c.baseURL, id)
	if _, err := c.do(ctx, http.MethodPost, url, payload, nil, http.StatusOK, http.StatusNoContent); err != nil {
		return fmt.Errorf("delete documents failed: %w", err)
	}
	return nil
}

// collectionID resolves a collection name to its id, caching the lookup
func (c *ChromaDBClient) collectionID(ctx context.Context, name string) (string, error) {
	c.mu.RLock()
	id, ok := c.collectionIDs[name]
	c.mu.RUnlock()
	if ok {
		return id, nil
	}

	collection, err := c.GetCollection(ctx, name)
	if err != nil {
		return "", err
	}
	return collection.ID, nil
}

func (c *ChromaDBClient) remember(name, id string) {
	if name == "" || id == "" {
		return
	}
	c.mu.Lock()
	c.collectionIDs[name] = id
	c.mu.Unlock()
}

// Close closes the HTTP client connections
func (c *ChromaDBClient) Close() {
	c.httpClient.CloseIdleConnections()
}
