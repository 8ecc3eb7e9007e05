package service

import (
	"testing"

	"github.com/meditwin/backend/pkg/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestClassifier() *DocumentClassifier {
	logger := zap.NewNop()
	return NewDocumentClassifier(NewMetricExtractor(logger), logger)
}

func TestDocumentClassifier_Classify(t *testing.T) {
	classifier := newTestClassifier()

	tests := []struct {
		name         string
		text         string
		expectedType model.DocumentType
		isDiabetes   bool
	}{
		{
			name:         "hba1c makes it a diabetes report",
			text:         "LAB REPORT\nHbA1c: 6.8%",
			expectedType: model.DocumentTypeDiabetesLabReport,
			isDiabetes:   true,
		},
		{
			name:         "glucose alone makes it a diabetes report",
			text:         "Fasting Glucose: 110 mg/dL",
			expectedType: model.DocumentTypeDiabetesLabReport,
			isDiabetes:   true,
		},
		{
			name:         "discharge summary",
			text:         "DISCHARGE SUMMARY for patient admitted with fever",
			expectedType: model.DocumentTypeDischargeSummary,
		},
		{
			name:         "discharge without summary falls through",
			text:         "Patient discharge notes and lab work",
			expectedType: model.DocumentTypeLabReport,
		},
		{
			name:         "prescription",
			text:         "PRESCRIPTION: Metformin 500mg twice daily",
			expectedType: model.DocumentTypePrescription,
		},
		{
			name:         "lab keyword",
			text:         "City Lab pathology results: Hemoglobin: 13.1 g/dL",
			expectedType: model.DocumentTypeLabReport,
		},
		{
			name:         "nothing recognizable",
			text:         "Handwritten consultation notes",
			expectedType: model.DocumentTypeOther,
		},
		{
			name:         "diabetes wins over discharge summary",
			text:         "DISCHARGE SUMMARY\nHbA1c: 8.2%",
			expectedType: model.DocumentTypeDiabetesLabReport,
			isDiabetes:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.Classify(tt.text)
			assert.Equal(t, tt.expectedType, result.DocumentType)
			assert.Equal(t, tt.isDiabetes, result.IsDiabetesReport)
		})
	}
}

func TestDocumentClassifier_ReportDate(t *testing.T) {
	classifier := newTestClassifier()

	result := classifier.Classify("LAB REPORT\nReport Date: 02-01-2025\nHbA1c: 6.8%")
	if assert.NotNil(t, result.ReportDate) {
		assert.Equal(t, "2025-01-02T00:00:00", *result.ReportDate)
	}

	result = classifier.Classify("LAB REPORT with no date")
	assert.Nil(t, result.ReportDate)
}
