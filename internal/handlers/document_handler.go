package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ragbot/internal/models"
	"ragbot/internal/services"
)

const maxMultipartMemory = 32 << 20

// DocumentManager ingests and manages a bot's documents
type DocumentManager interface {
	UploadDocument(ctx context.Context, req *services.UploadDocumentRequest) (*models.UploadResult, error)
	ListDocuments(ctx context.Context, botID string) ([]*models.Document, error)
	DeleteDocument(ctx context.Context, documentID string) error
	MoveDocument(ctx context.Context, documentID, newBotID string) (*models.Document, error)
}

// DocumentHandler handles HTTP requests for document operations
type DocumentHandler struct {
	responder
	docs DocumentManager
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docs DocumentManager, logger *log.Logger) *DocumentHandler {
	return &DocumentHandler{
		responder: responder{logger: logger},
		docs:      docs,
	}
}

// DocumentListResponse represents a list of documents response
type DocumentListResponse struct {
	Documents []*models.Document `json:"documents"`
	Count     int                `json:"count"`
}

// UploadDocument handles document upload requests
// @Summary Upload a document
// @Description Ingest a text or markdown file into a bot's knowledge base
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file (.txt, .md)"
// @Param bot_id formData string true "Owning bot"
// @Success 200 {object} models.UploadResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/documents/upload [post]
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	h.logger.Printf("Upload request from %s", r.RemoteAddr)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.logger.Printf("Failed to parse form: %v", err)
		h.sendError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	botID := r.FormValue("bot_id")
	if botID == "" {
		h.sendError(w, http.StatusBadRequest, "bot_id is required")
		return
	}

	resp, err := h.docs.UploadDocument(r.Context(), &services.UploadDocumentRequest{
		BotID:       botID,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		FileContent: file,
		FileSize:    header.Size,
	})
	if err != nil {
		h.sendServiceError(w, "Upload", err)
		return
	}
	h.sendJSON(w, http.StatusOK, resp)
}

// ListDocuments lists registered documents
// @Summary List documents
// @Tags documents
// @Produce json
// @Param bot_id query string false "Only documents of this bot"
// @Success 200 {object} DocumentListResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/documents [get]
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.docs.ListDocuments(r.Context(), r.URL.Query().Get("bot_id"))
	if err != nil {
		h.sendServiceError(w, "List documents", err)
		return
	}
	h.sendJSON(w, http.StatusOK, DocumentListResponse{Documents: docs, Count: len(docs)})
}

// DeleteDocument handles requests to delete a document
// @Summary Delete document
// @Description Delete a document and all its chunks
// @Tags documents
// @Produce json
// @Param document_id path string true "Document ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/documents/{document_id} [delete]
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["document_id"]

	if err := h.docs.DeleteDocument(r.Context(), documentID); err != nil {
		h.sendServiceError(w, "Delete document", err)
		return
	}
	h.sendJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Document deleted successfully",
	})
}

// MoveDocument reassigns a document to another bot
// @Summary Move document
// @Description Reassign a document and its chunks to another bot
// @Tags documents
// @Produce json
// @Param document_id path string true "Document ID"
// @Param new_bot_id query string true "Target bot"
// @Success 200 {object} models.Document
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/documents/{document_id}/move [patch]
func (h *DocumentHandler) MoveDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.docs.MoveDocument(r.Context(), mux.Vars(r)["document_id"], r.URL.Query().Get("new_bot_id"))
	if err != nil {
		h.sendServiceError(w, "Move document", err)
		return
	}
	h.sendJSON(w, http.StatusOK, doc)
}
