package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meditwin/backend/internal/repository"
	"github.com/meditwin/backend/internal/service"
	"github.com/meditwin/backend/pkg/model"
	"go.uber.org/zap"
)

// AnalysisResponse wraps the analysis result for the API
type AnalysisResponse struct {
	Success bool `json:"success"`
	model.AnalysisResult
}

// ChartDataResponse carries the chart series plus per-series point counts
type ChartDataResponse struct {
	Success    bool            `json:"success"`
	Data       model.ChartData `json:"data"`
	DataPoints map[string]int  `json:"dataPoints"`
}

// AnalysisHandler implements the analysis and chart API endpoints
type AnalysisHandler struct {
	analysis  *service.AnalysisService
	documents *service.DocumentService
	logger    *zap.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analysis *service.AnalysisService, documents *service.DocumentService, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysis:  analysis,
		documents: documents,
		logger:    logger,
	}
}

// Explain handles GET /api/documents/:id/analysis
func (h *AnalysisHandler) Explain(c *gin.Context) {
	result, err := h.analysis.Explain(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "Document not found",
			})
			return
		}

		h.logger.Error("analysis failed", zap.Error(err), zap.String("document_id", c.Param("id")))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "ANALYSIS_FAILED",
			Message: "Failed to analyze document",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, AnalysisResponse{
		Success:        true,
		AnalysisResult: *result,
	})
}

// ChartData handles GET /api/chart-data
func (h *AnalysisHandler) ChartData(c *gin.Context) {
	data, err := h.documents.ChartData(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.Error("failed to build chart data", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to fetch chart data",
		})
		return
	}

	c.JSON(http.StatusOK, ChartDataResponse{
		Success: true,
		Data:    *data,
		DataPoints: map[string]int{
			"hba1c":          len(data.HbA1c),
			"glucose":        len(data.Glucose),
			"blood_pressure": len(data.BloodPressure),
			"cholesterol":    len(data.Cholesterol),
		},
	})
}
