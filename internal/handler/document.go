package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meditwin/backend/internal/repository"
	"github.com/meditwin/backend/internal/service"
	"github.com/meditwin/backend/pkg/model"
	"go.uber.org/zap"
)

// maxUploadBytes caps uploaded PDF size at 20 MB
const maxUploadBytes = 20 << 20

// UploadResponse is returned for accepted uploads
type UploadResponse struct {
	Success          bool   `json:"success"`
	DocumentID       string `json:"documentId"`
	DocumentType     string `json:"documentType"`
	ValidationStatus string `json:"validationStatus"`
}

// RejectedUploadResponse is returned when the medical gate rejects a file.
// The request itself succeeded, so it ships with HTTP 200.
type RejectedUploadResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

// DeleteResponse confirms a document deletion
type DeleteResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DocumentID string `json:"documentId"`
}

// DocumentHandler implements the document API endpoints
type DocumentHandler struct {
	service *service.DocumentService
	logger  *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(service *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		logger:  logger,
	}
}

// Upload handles POST /api/documents
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Missing file upload",
			Details: stringPtr(err.Error()),
		})
		return
	}

	if contentType := fileHeader.Header.Get("Content-Type"); contentType != "application/pdf" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Only PDFs supported",
		})
		return
	}

	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "File too large",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.logger.Error("failed to read uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to read uploaded file",
		})
		return
	}

	result, err := h.service.Upload(c.Request.Context(), currentUserID(c), fileHeader.Filename, fileBytes, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		var notMedical *service.NotMedicalError
		if errors.As(err, &notMedical) {
			c.JSON(http.StatusOK, RejectedUploadResponse{
				Success: false,
				Error:   "NON-MEDICAL DOCUMENT REJECTED",
				Message: "Only medical documents accepted (lab reports, prescriptions, discharge summaries)",
				Reason:  notMedical.Reason,
			})
			return
		}

		h.logger.Error("upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to process document",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Success:          true,
		DocumentID:       result.DocumentID,
		DocumentType:     string(result.DocumentType),
		ValidationStatus: result.ValidationStatus,
	})
}

// Get handles GET /api/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "Document not found",
			})
			return
		}

		h.logger.Error("failed to get document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to get document",
		})
		return
	}

	c.JSON(http.StatusOK, doc)
}

// List handles GET /api/documents
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.service.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.Error("failed to list documents", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to list documents",
		})
		return
	}

	if docs == nil {
		docs = []*model.Document{}
	}

	c.JSON(http.StatusOK, docs)
}

// Delete handles DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	documentID := c.Param("id")

	err := h.service.Delete(c.Request.Context(), currentUserID(c), documentID, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "Document not found",
			})
			return
		}

		h.logger.Error("failed to delete document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to delete document",
		})
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{
		Success:    true,
		Message:    "Document deleted successfully",
		DocumentID: documentID,
	})
}
