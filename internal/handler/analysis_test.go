package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meditwin/backend/internal/service"
	"github.com/meditwin/backend/pkg/model"
	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubCompletion returns a canned response or error
type stubCompletion struct {
	response string
	err      error
}

func (s *stubCompletion) Complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	return s.response, s.err
}

func newAnalysisRouter(repo service.DocumentRepository, ai service.CompletionClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	analysisService := service.NewAnalysisService(repo, ai, logger)
	docService := service.NewDocumentService(repo, &stubExtractor{}, nil, nil, logger)
	handler := NewAnalysisHandler(analysisService, docService, logger)

	router := gin.New()
	api := router.Group("/api")
	api.GET("/documents/:id/analysis", handler.Explain)
	api.GET("/chart-data", handler.ChartData)

	return router
}

func seededRepository(t *testing.T) *stubRepository {
	t.Helper()

	repo := newStubRepository()
	err := repo.Save(context.Background(), &model.Document{
		ID:           "doc-1",
		UserID:       "test-user-id",
		Filename:     "report.pdf",
		UploadDate:   time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
		RawText:      "lab report hba1c: 6.8%",
		DocumentType: model.DocumentTypeDiabetesLabReport,
		Metrics:      model.MetricSet{"hba1c": "6.8%"},
	})
	require.NoError(t, err)

	return repo
}

func TestAnalysisHandler_Explain(t *testing.T) {
	repo := seededRepository(t)
	ai := &stubCompletion{response: `{"summary":"Elevated HbA1c.","keyFindings":["HbA1c 6.8%"],"doctorQuestions":["My HbA1c is 6.8% - what now?"],"recommendations":["Cut refined sugar"],"criticalAlerts":null}`}
	router := newAnalysisRouter(repo, ai)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/doc-1/analysis", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "doc-1", resp.DocumentID)
	assert.Equal(t, "Elevated HbA1c.", resp.AIAnalysis.Summary)
	assert.Equal(t, model.SeverityWarning, resp.Severity.Severity["hba1c"].Level)
	assert.Empty(t, resp.Note)
}

func TestAnalysisHandler_ExplainQuotaFallback(t *testing.T) {
	repo := seededRepository(t)
	ai := &stubCompletion{err: errors.New("429 too many requests: quota exceeded")}
	router := newAnalysisRouter(repo, ai)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/doc-1/analysis", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Generated using fallback due to API quota limit", resp.Note)
	assert.Len(t, resp.AIAnalysis.DoctorQuestions, 5)
}

func TestAnalysisHandler_ExplainNotFound(t *testing.T) {
	router := newAnalysisRouter(newStubRepository(), &stubCompletion{})

	req := httptest.NewRequest(http.MethodGet, "/api/documents/missing/analysis", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalysisHandler_ExplainMalformedAIResponse(t *testing.T) {
	repo := seededRepository(t)
	ai := &stubCompletion{response: "I cannot help with that."}
	router := newAnalysisRouter(repo, ai)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/doc-1/analysis", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "ANALYSIS_FAILED", errResp.Code)
}

func TestAnalysisHandler_ChartData(t *testing.T) {
	repo := seededRepository(t)
	router := newAnalysisRouter(repo, &stubCompletion{})

	req := httptest.NewRequest(http.MethodGet, "/api/chart-data", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ChartDataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.DataPoints["hba1c"])
	require.Len(t, resp.Data.HbA1c, 1)
	assert.Equal(t, 6.8, resp.Data.HbA1c[0].Value)
	assert.Equal(t, "06/30", resp.Data.HbA1c[0].Date)
}
