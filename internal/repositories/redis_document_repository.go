package repositories

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"ragbot/internal/models"
)

const (
	documentKeyPrefix   = "document:"
	documentIndexKey    = "documents:index"
	botDocumentsKeyPref = "bot_documents:"
)

// RedisDocumentRepository implements DocumentRepository using Redis
type RedisDocumentRepository struct {
	client *redis.Client
}

// NewRedisDocumentRepository creates a new Redis-based document repository
func NewRedisDocumentRepository(client *redis.Client) *RedisDocumentRepository {
	return &RedisDocumentRepository{
		client: client,
	}
}

// Register stores a new document in the registry
func (r *RedisDocumentRepository) Register(ctx context.Context, doc *models.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	exists, err := r.client.Exists(ctx, documentKeyPrefix+doc.ID).Result()
	if err != nil {
		return NewDocumentRepositoryError("register", doc.ID, err, "")
	}
	if exists > 0 {
		return DocumentAlreadyExistsError(doc.ID)
	}

	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	return r.write(ctx, "register", doc, "")
}

// write stores the document and moves it between bot indexes when previousBotID differs
func (r *RedisDocumentRepository) write(ctx context.Context, op string, doc *models.Document, previousBotID string) error {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return NewDocumentRepositoryError(op, doc.ID, err, "failed to marshal document")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, documentKeyPrefix+doc.ID, docJSON, 0)
	pipe.SAdd(ctx, documentIndexKey, doc.ID)
	if previousBotID != "" && previousBotID != doc.BotID {
		pipe.SRem(ctx, botDocumentsKeyPref+previousBotID, doc.ID)
	}
	pipe.SAdd(ctx, botDocumentsKeyPref+doc.BotID, doc.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return NewDocumentRepositoryError(op, doc.ID, err, "failed to execute transaction")
	}
	return nil
}

// Get retrieves a document by ID
func (r *RedisDocumentRepository) Get(ctx context.Context, documentID string) (*models.Document, error) {
	docJSON, err := r.client.Get(ctx, documentKeyPrefix+documentID).Result()
	if err == redis.Nil {
		return nil, DocumentNotFoundError(documentID)
	}
	if err != nil {
		return nil, NewDocumentRepositoryError("get", documentID, err, "")
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(docJSON), &doc); err != nil {
		return nil, NewDocumentRepositoryError("get", documentID, err, "failed to unmarshal document")
	}
	return &doc, nil
}

// List retrieves all documents, newest first
func (r *RedisDocumentRepository) List(ctx context.Context) ([]*models.Document, error) {
	ids, err := r.client.SMembers(ctx, documentIndexKey).Result()
	if err != nil {
		return nil, NewDocumentRepositoryError("list", "", err, "")
	}
	return r.getBatch(ctx, ids)
}

// ListByBot retrieves the documents owned by a bot, newest first
func (r *RedisDocumentRepository) ListByBot(ctx context.Context, botID string) ([]*models.Document, error) {
	ids, err := r.client.SMembers(ctx, botDocumentsKeyPref+botID).Result()
	if err != nil {
		return nil, NewDocumentRepositoryError("list_by_bot", "", err, "")
	}
	return r.getBatch(ctx, ids)
}

// Save overwrites an existing document, e.g. after ingestion finishes
func (r *RedisDocumentRepository) Save(ctx context.Context, doc *models.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	existing, err := r.Get(ctx, doc.ID)
	if err != nil {
		return err
	}
	doc.CreatedAt = existing.CreatedAt
	doc.UpdatedAt = time.Now().UTC()
	return r.write(ctx, "save", doc, existing.BotID)
}

// Reassign moves a document to another bot
func (r *RedisDocumentRepository) Reassign(ctx context.Context, documentID string, newBotID string) (*models.Document, error) {
	doc, err := r.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	previous := doc.BotID
	doc.BotID = newBotID
	doc.UpdatedAt = time.Now().UTC()
	if err := r.write(ctx, "reassign", doc, previous); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes a document from the registry
func (r *RedisDocumentRepository) Delete(ctx context.Context, documentID string) error {
	doc, err := r.Get(ctx, documentID)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, documentKeyPrefix+documentID)
	pipe.SRem(ctx, documentIndexKey, documentID)
	pipe.SRem(ctx, botDocumentsKeyPref+doc.BotID, documentID)

	if _, err := pipe.Exec(ctx); err != nil {
		return NewDocumentRepositoryError("delete", documentID, err, "failed to execute transaction")
	}
	return nil
}

// CountByBot returns the number of documents a bot owns
func (r *RedisDocumentRepository) CountByBot(ctx context.Context, botID string) (int, error) {
	n, err := r.client.SCard(ctx, botDocumentsKeyPref+botID).Result()
	if err != nil {
		return 0, NewDocumentRepositoryError("count_by_bot", "", err, "")
	}
	return int(n), nil
}

func (r *RedisDocumentRepository) getBatch(ctx context.Context, ids []string) ([]*models.Document, error) {
	if len(ids) == 0 {
		return []*models.Document{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, documentKeyPrefix+id)
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, NewDocumentRepositoryError("get_batch", "", err, "failed to execute batch get")
	}

	docs := make([]*models.Document, 0, len(ids))
	for i, cmd := range cmds {
		docJSON, err := cmd.Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, NewDocumentRepositoryError("get_batch", ids[i], err, "")
		}
		var doc models.Document
		if err := json.Unmarshal([]byte(docJSON), &doc); err != nil {
			return nil, NewDocumentRepositoryError("get_batch", ids[i], err, "failed to unmarshal document")
		}
		docs = append(docs, &doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}
