package model

import "time"

// Metric keys used across extraction, severity assessment, and trend comparison.
// Every value stored under these keys uses a fixed display format that the
// consumers parse back: hba1c "<float>%", glucose/cholesterol "<int> mg/dL",
// hemoglobin "<float> g/dL", creatinine "<float> mg/dL",
// blood_pressure "<int>/<int> mmHg".
const (
	MetricHbA1c         = "hba1c"
	MetricGlucose       = "glucose"
	MetricBloodPressure = "blood_pressure"
	MetricCholesterol   = "cholesterol"
	MetricHemoglobin    = "hemoglobin"
	MetricCreatinine    = "creatinine"
)

// MetricSet maps a metric key to its canonical display string.
// A missing key means the metric was not found in the document.
type MetricSet map[string]string

// DocumentType classifies an uploaded medical document
type DocumentType string

const (
	DocumentTypeDiabetesLabReport DocumentType = "DIABETES_LAB_REPORT"
	DocumentTypeDischargeSummary  DocumentType = "DISCHARGE_SUMMARY"
	DocumentTypePrescription      DocumentType = "PRESCRIPTION"
	DocumentTypeLabReport         DocumentType = "LAB_REPORT"
	DocumentTypeOther             DocumentType = "OTHER"
)

// Classification is the immutable result of classifying a document's text,
// computed once at upload time.
type Classification struct {
	DocumentType     DocumentType `json:"documentType"`
	IsDiabetesReport bool         `json:"isDiabetesReport"`
	ReportDate       *string      `json:"reportDate"`
	Metrics          MetricSet    `json:"metrics"`
}

// Document represents a stored medical document belonging to a user
type Document struct {
	ID               string       `json:"id"`
	UserID           string       `json:"user_id"`
	Filename         string       `json:"filename"`
	UploadDate       time.Time    `json:"uploadDate"`
	RawText          string       `json:"rawText"`
	DocumentType     DocumentType `json:"documentType"`
	IsDiabetesReport bool         `json:"isDiabetesReport"`
	ReportDate       *string      `json:"reportDate"`
	Metrics          MetricSet    `json:"metrics"`
	ValidationStatus string       `json:"validationStatus"`
	BlobPath         *string      `json:"blobPath,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

// MetricHistoryEntry is the slice of a stored document the trend comparator
// needs: identity, upload time, and extracted metrics.
type MetricHistoryEntry struct {
	ID         string    `json:"id"`
	UploadDate time.Time `json:"uploadDate"`
	Metrics    MetricSet `json:"metrics"`
}

// SeverityLevel is a thresholded classification band for a metric value
type SeverityLevel string

const (
	SeverityNormal   SeverityLevel = "NORMAL"
	SeverityElevated SeverityLevel = "ELEVATED"
	SeverityWarning  SeverityLevel = "WARNING"
	SeverityCritical SeverityLevel = "CRITICAL"
)

// SeverityRecord describes how one metric value relates to its clinical thresholds
type SeverityRecord struct {
	Level   SeverityLevel `json:"level"`
	Color   string        `json:"color"`
	Label   string        `json:"label"`
	Message string        `json:"message"`
}

// SeverityAssessment is the per-request severity evaluation of a MetricSet.
// CriticalAlerts is nil (JSON null) when no metric reached WARNING or
// CRITICAL; callers rely on the nil/non-nil distinction.
type SeverityAssessment struct {
	Severity       map[string]SeverityRecord `json:"severity"`
	CriticalAlerts []string                  `json:"criticalAlerts"`
	HasCritical    bool                      `json:"hasCritical"`
	HasWarning     bool                      `json:"hasWarning"`
}

// TrendDirection indicates how a metric moved relative to the previous report
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// MetricChange is the signed comparison of one metric between the current
// document and its immediate predecessor.
type MetricChange struct {
	Current       string         `json:"current"`
	Previous      string         `json:"previous"`
	Change        float64        `json:"change"`
	ChangePercent *float64       `json:"changePercent,omitempty"`
	Direction     TrendDirection `json:"direction"`
	Arrow         string         `json:"arrow"`
	IsImproving   bool           `json:"isImproving"`
}

// TrendComparison compares a document's metrics against the user's nearest
// earlier report.
type TrendComparison struct {
	HasPreviousReport bool                    `json:"hasPreviousReport"`
	PreviousDate      *time.Time              `json:"previousDate"`
	Changes           map[string]MetricChange `json:"changes"`
}

// Analysis is the narrative explanation of a document, produced either by
// the AI collaborator or by the deterministic fallback generator. Both paths
// produce the same shape so consumers cannot tell them apart.
type Analysis struct {
	Summary         string   `json:"summary"`
	KeyFindings     []string `json:"keyFindings"`
	DoctorQuestions []string `json:"doctorQuestions"`
	Recommendations []string `json:"recommendations"`
	CriticalAlerts  []string `json:"criticalAlerts"`
}

// AnalysisResult is the full response of the explain-document operation
type AnalysisResult struct {
	DocumentID string             `json:"documentId"`
	Filename   string             `json:"filename"`
	Metrics    MetricSet          `json:"metrics"`
	Trends     TrendComparison    `json:"trends"`
	Severity   SeverityAssessment `json:"severity"`
	AIAnalysis Analysis           `json:"aiAnalysis"`
	Note       string             `json:"note,omitempty"`
}

// ChartPoint is a single value in a metric time series
type ChartPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// TimelineEntry marks one document on the chart timeline
type TimelineEntry struct {
	Date         string       `json:"date"`
	Filename     string       `json:"filename"`
	DocumentType DocumentType `json:"documentType"`
}

// ChartData holds per-metric time series ordered oldest-first for charting
type ChartData struct {
	HbA1c         []ChartPoint    `json:"hba1c"`
	Glucose       []ChartPoint    `json:"glucose"`
	BloodPressure []ChartPoint    `json:"blood_pressure"`
	Cholesterol   []ChartPoint    `json:"cholesterol"`
	Timeline      []TimelineEntry `json:"timeline"`
}
