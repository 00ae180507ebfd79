package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ragbot/internal/db"
)

const (
	metaBotID      = "bot_id"
	metaDocumentID = "doc_id"
	metaChunkIndex = "chunk_index"
)

// ChromaVectorRepository implements VectorRepository using ChromaDB.
// All documents of all bots share one collection; isolation comes from the
// bot_id metadata filter this repository attaches to every query.
type ChromaVectorRepository struct {
	client *db.ChromaDBClient
}

// NewChromaVectorRepository creates a new ChromaDB-backed vector repository
func NewChromaVectorRepository(client *db.ChromaDBClient) *ChromaVectorRepository {
	return &ChromaVectorRepository{
		client: client,
	}
}

// botFilter is the only way a where clause is built for reads
func botFilter(botID string) map[string]interface{} {
	return map[string]interface{}{metaBotID: botID}
}

func botDocumentFilter(botID, documentID string) map[string]interface{} {
	return map[string]interface{}{
		"$and": []map[string]interface{}{
			{metaBotID: botID},
			{metaDocumentID: documentID},
		},
	}
}

// EnsureCollection creates the collection if it does not exist
func (r *ChromaVectorRepository) EnsureCollection(ctx context.Context, collectionName string) error {
	if _, err := r.client.GetOrCreateCollection(ctx, collectionName, nil); err != nil {
		return NewVectorRepositoryError("ensure_collection", err, "failed to ensure collection "+collectionName)
	}
	return nil
}

// StoreChunks stores chunks in a collection. Every chunk must name its bot.
func (r *ChromaVectorRepository) StoreChunks(ctx context.Context, collectionName string, chunks []*Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	ids := make([]string, len(chunks))
	documents := make([]string, len(chunks))
	embeddings := make([][]float32, len(chunks))
	metadatas := make([]map[string]interface{}, len(chunks))

	for i, chunk := range chunks {
		if chunk.BotID == "" {
			return MissingBotIDError("store_chunks")
		}
		ids[i] = chunk.ID
		documents[i] = chunk.Text
		embeddings[i] = chunk.Embedding
		metadatas[i] = flattenMetadata(chunk)
	}

	if err := r.client.AddDocuments(ctx, collectionName, ids, documents, embeddings, metadatas); err != nil {
		return r.wrap("store_chunks", collectionName, err, fmt.Sprintf("failed to store %d chunks", len(chunks)))
	}
	return nil
}

// flattenMetadata builds Chroma metadata for a chunk.
// Chroma only accepts scalar values, so slices and maps are stored as JSON strings.
// The identity keys are written last so custom metadata cannot override them.
func flattenMetadata(chunk *Chunk) map[string]interface{} {
	metadata := make(map[string]interface{}, len(chunk.Metadata)+3)
	for k, v := range chunk.Metadata {
		switch val := v.(type) {
		case []string, []interface{}, map[string]interface{}:
			if jsonBytes, err := json.Marshal(val); err == nil {
				metadata[k] = string(jsonBytes)
			}
		default:
			metadata[k] = v
		}
	}
	metadata[metaBotID] = chunk.BotID
	metadata[metaDocumentID] = chunk.DocumentID
	metadata[metaChunkIndex] = chunk.ChunkIndex
	return metadata
}

// SearchChunks returns the topK nearest chunks belonging to botID
func (r *ChromaVectorRepository) SearchChunks(ctx context.Context, collectionName string, botID string, queryEmbedding []float32, topK int) ([]*SearchResult, error) {
	if botID == "" {
		return nil, MissingBotIDError("search_chunks")
	}
	if topK <= 0 {
		return []*SearchResult{}, nil
	}

	results, err := r.client.Query(ctx, collectionName, [][]float32{queryEmbedding}, topK, botFilter(botID))
	if err != nil {
		return nil, r.wrap("search_chunks", collectionName, err, "query failed")
	}

	searchResults := make([]*SearchResult, 0, topK)
	if len(results.IDs) == 0 {
		return searchResults, nil
	}

	for i, id := range results.IDs[0] {
		var metadata map[string]interface{}
		if len(results.Metadatas) > 0 && len(results.Metadatas[0]) > i {
			metadata = results.Metadatas[0][i]
		}
		if metadata == nil {
			metadata = map[string]interface{}{}
		}

		// drop anything returned outside the filter
		if owner, _ := metadata[metaBotID].(string); owner != botID {
			continue
		}

		var text string
		if len(results.Documents) > 0 && len(results.Documents[0]) > i {
			text = results.Documents[0][i]
		}

		var distance float64
		if len(results.Distances) > 0 && len(results.Distances[0]) > i {
			distance = results.Distances[0][i]
		}

		documentID, _ := metadata[metaDocumentID].(string)

		searchResults = append(searchResults, &SearchResult{
			ChunkID:    id,
			DocumentID: documentID,
			Text:       text,
			Distance:   distance,
			Metadata:   metadata,
		})
	}

	return searchResults, nil
}

// DeleteDocument deletes all chunks of a bot's document and returns how many were removed
func (r *ChromaVectorRepository) DeleteDocument(ctx context.Context, collectionName string, botID string, documentID string) (int, error) {
	if botID == "" {
		return 0, MissingBotIDError("delete_document")
	}

	result, err := r.client.GetDocuments(ctx, collectionName, botDocumentFilter(botID, documentID), 0, 0)
	if err != nil {
		return 0, r.wrap("delete_document", collectionName, err, "failed to get chunks for document")
	}
	if len(result.IDs) == 0 {
		return 0, nil
	}

	if err := r.client.DeleteDocuments(ctx, collectionName, result.IDs); err != nil {
		return 0, r.wrap("delete_document", collectionName, err, fmt.Sprintf("failed to delete %d chunks", len(result.IDs)))
	}
	return len(result.IDs), nil
}

// ReassignDocument moves a document's chunks from one bot to another by rewriting their bot_id
func (r *ChromaVectorRepository) ReassignDocument(ctx context.Context, collectionName string, documentID string, fromBotID string, toBotID string) (int, error) {
	if fromBotID == "" || toBotID == "" {
		return 0, MissingBotIDError("reassign_document")
	}

	result, err := r.client.GetDocuments(ctx, collectionName, botDocumentFilter(fromBotID, documentID), 0, 0)
	if err != nil {
		return 0, r.wrap("reassign_document", collectionName, err, "failed to get chunks for document")
	}
	if len(result.IDs) == 0 {
		return 0, nil
	}

	metadatas := make([]map[string]interface{}, len(result.IDs))
	for i := range result.IDs {
		meta := map[string]interface{}{}
		if i < len(result.Metadatas) && result.Metadatas[i] != nil {
			for k, v := range result.Metadatas[i] {
				meta[k] = v
			}
		}
		meta[metaBotID] = toBotID
		metadatas[i] = meta
	}

	if err := r.client.UpdateMetadatas(ctx, collectionName, result.IDs, metadatas); err != nil {
		return 0, r.wrap("reassign_document", collectionName, err, fmt.Sprintf("failed to update %d chunks", len(result.IDs)))
	}
	return len(result.IDs), nil
}

// CountChunks counts the chunks stored for a bot
func (r *ChromaVectorRepository) CountChunks(ctx context.Context, collectionName string, botID string) (int, error) {
	if botID == "" {
		return 0, MissingBotIDError("count_chunks")
	}

	result, err := r.client.GetDocuments(ctx, collectionName, botFilter(botID), 0, 0)
	if err != nil {
		return 0, r.wrap("count_chunks", collectionName, err, "")
	}
	return len(result.IDs), nil
}

// Ping checks if ChromaDB is alive
func (r *ChromaVectorRepository) Ping(ctx context.Context) error {
	if err := r.client.Heartbeat(ctx); err != nil {
		return NewVectorRepositoryError("ping", err, "ChromaDB heartbeat failed")
	}
	return nil
}

// Close closes the ChromaDB client
func (r *ChromaVectorRepository) Close() error {
	r.client.Close()
	return nil
}

func (r *ChromaVectorRepository) wrap(operation, collectionName string, err error, message string) error {
	if errors.Is(err, db.ErrCollectionNotFound) {
		return CollectionNotFoundError(collectionName)
	}
	return NewVectorRepositoryError(operation, err, message)
}
