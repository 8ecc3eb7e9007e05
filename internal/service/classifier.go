package service

import (
	"strings"

	"github.com/meditwin/backend/pkg/model"
	"go.uber.org/zap"
)

// DocumentClassifier determines the document type of an uploaded report and
// extracts its metrics and report date in one pass.
type DocumentClassifier struct {
	metrics *MetricExtractor
	logger  *zap.Logger
}

// NewDocumentClassifier creates a new DocumentClassifier
func NewDocumentClassifier(metrics *MetricExtractor, logger *zap.Logger) *DocumentClassifier {
	return &DocumentClassifier{
		metrics: metrics,
		logger:  logger,
	}
}

// Classify inspects report text and returns its type, diabetes flag, report
// date and extracted metrics. A document carrying an HbA1c or glucose value
// is a diabetes report regardless of any other keywords present.
func (dc *DocumentClassifier) Classify(text string) model.Classification {
	upper := strings.ToUpper(text)

	metrics := dc.metrics.Extract(text)

	isDiabetes := metrics[model.MetricHbA1c] != "" || metrics[model.MetricGlucose] != ""

	documentType := model.DocumentTypeOther
	switch {
	case isDiabetes:
		documentType = model.DocumentTypeDiabetesLabReport
	case strings.Contains(upper, "DISCHARGE") && strings.Contains(upper, "SUMMARY"):
		documentType = model.DocumentTypeDischargeSummary
	case strings.Contains(upper, "PRESCRIPTION"):
		documentType = model.DocumentTypePrescription
	case strings.Contains(upper, "LAB") || strings.Contains(upper, "REPORT"):
		documentType = model.DocumentTypeLabReport
	}

	classification := model.Classification{
		DocumentType:     documentType,
		IsDiabetesReport: isDiabetes,
		ReportDate:       extractReportDate(upper),
		Metrics:          metrics,
	}

	dc.logger.Debug("classified document",
		zap.String("document_type", string(documentType)),
		zap.Bool("is_diabetes_report", isDiabetes),
		zap.Int("metric_count", len(metrics)),
	)

	return classification
}
