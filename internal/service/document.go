package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meditwin/backend/internal/audit"
	"github.com/meditwin/backend/internal/azure"
	"github.com/meditwin/backend/pkg/model"
	"go.uber.org/zap"
)

// DocumentRepository is the persistence boundary for stored documents
type DocumentRepository interface {
	Save(ctx context.Context, doc *model.Document) error
	GetByID(ctx context.Context, userID, documentID string) (*model.Document, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Document, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]model.MetricHistoryEntry, error)
	ListChronological(ctx context.Context, userID string) ([]*model.Document, error)
	Delete(ctx context.Context, userID, documentID string) error
}

// TextExtractor converts uploaded file bytes into plain text
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// NotMedicalError is returned when the medical gate rejects an upload.
// Reason carries the gate's human-readable explanation for the response body.
type NotMedicalError struct {
	Reason string
}

func (e *NotMedicalError) Error() string {
	return fmt.Sprintf("document rejected: %s", e.Reason)
}

// UploadResult is what a successful upload reports back to the caller
type UploadResult struct {
	DocumentID       string
	DocumentType     model.DocumentType
	ValidationStatus string
}

// DocumentService orchestrates the upload pipeline (text extraction, medical
// gate, classification, archival, persistence) and document retrieval.
type DocumentService struct {
	repo       DocumentRepository
	pdf        TextExtractor
	gate       *MedicalGate
	classifier *DocumentClassifier
	blob       azure.BlobStorage
	audit      *audit.Logger
	logger     *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	repo DocumentRepository,
	pdf TextExtractor,
	blob azure.BlobStorage,
	auditLogger *audit.Logger,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		repo:       repo,
		pdf:        pdf,
		gate:       NewMedicalGate(),
		classifier: NewDocumentClassifier(NewMetricExtractor(logger), logger),
		blob:       blob,
		audit:      auditLogger,
		logger:     logger,
	}
}

// Upload runs the full ingestion pipeline for one PDF. Returns a
// *NotMedicalError when the gate rejects the content. Blob archival and
// audit logging failures are logged but do not fail the upload.
func (ds *DocumentService) Upload(ctx context.Context, userID, filename string, fileBytes []byte, ipAddress, userAgent string) (*UploadResult, error) {
	rawText, err := ds.pdf.ExtractText(fileBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	accepted, reason := ds.gate.Check(rawText)
	if !accepted {
		ds.logger.Info("upload rejected by medical gate",
			zap.String("user_id", userID),
			zap.String("filename", filename),
			zap.String("reason", reason),
		)
		return nil, &NotMedicalError{Reason: reason}
	}

	normalizedText := strings.ToLower(rawText)
	classification := ds.classifier.Classify(normalizedText)

	doc := &model.Document{
		ID:               uuid.New().String(),
		UserID:           userID,
		Filename:         filename,
		UploadDate:       time.Now().UTC(),
		RawText:          normalizedText,
		DocumentType:     classification.DocumentType,
		IsDiabetesReport: classification.IsDiabetesReport,
		ReportDate:       classification.ReportDate,
		Metrics:          classification.Metrics,
		ValidationStatus: "MEDICAL_VERIFIED",
	}

	if ds.blob != nil {
		blobPath, err := ds.blob.UploadPDF(ctx, userID, doc.ID, fileBytes)
		if err != nil {
			ds.logger.Warn("failed to archive PDF, continuing without archival",
				zap.Error(err),
				zap.String("document_id", doc.ID),
			)
		} else {
			doc.BlobPath = &blobPath
		}
	}

	if err := ds.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	if ds.audit != nil {
		if err := ds.audit.LogCreate(ctx, userID, string(audit.ResourceDocument), doc.ID, ipAddress, userAgent); err != nil {
			ds.logger.Warn("failed to write audit log", zap.Error(err))
		}
	}

	ds.logger.Info("document uploaded",
		zap.String("document_id", doc.ID),
		zap.String("user_id", userID),
		zap.String("document_type", string(doc.DocumentType)),
		zap.Int("metric_count", len(doc.Metrics)),
	)

	return &UploadResult{
		DocumentID:       doc.ID,
		DocumentType:     doc.DocumentType,
		ValidationStatus: reason,
	}, nil
}

// Get returns one stored document
func (ds *DocumentService) Get(ctx context.Context, userID, documentID string) (*model.Document, error) {
	return ds.repo.GetByID(ctx, userID, documentID)
}

// List returns all documents belonging to the user
func (ds *DocumentService) List(ctx context.Context, userID string) ([]*model.Document, error) {
	return ds.repo.ListByUser(ctx, userID)
}

// Delete removes a stored document and its archived PDF. The blob delete is
// best-effort since the database row is the source of truth.
func (ds *DocumentService) Delete(ctx context.Context, userID, documentID string, ipAddress, userAgent string) error {
	doc, err := ds.repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return err
	}

	if err := ds.repo.Delete(ctx, userID, documentID); err != nil {
		return err
	}

	if ds.blob != nil && doc.BlobPath != nil {
		if err := ds.blob.DeletePDF(ctx, *doc.BlobPath); err != nil {
			ds.logger.Warn("failed to delete archived PDF",
				zap.Error(err),
				zap.String("blob_path", *doc.BlobPath),
			)
		}
	}

	if ds.audit != nil {
		if err := ds.audit.LogDelete(ctx, userID, string(audit.ResourceDocument), documentID, ipAddress, userAgent); err != nil {
			ds.logger.Warn("failed to write audit log", zap.Error(err))
		}
	}

	return nil
}

// ChartData builds per-metric time series from the user's documents, oldest
// first. Documents without metrics are skipped; a metric unparseable in one
// document is skipped for that series only.
func (ds *DocumentService) ChartData(ctx context.Context, userID string) (*model.ChartData, error) {
	docs, err := ds.repo.ListChronological(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chart data: %w", err)
	}

	data := &model.ChartData{
		HbA1c:         []model.ChartPoint{},
		Glucose:       []model.ChartPoint{},
		BloodPressure: []model.ChartPoint{},
		Cholesterol:   []model.ChartPoint{},
		Timeline:      []model.TimelineEntry{},
	}

	for _, doc := range docs {
		if len(doc.Metrics) == 0 || doc.UploadDate.IsZero() {
			continue
		}

		dateLabel := doc.UploadDate.Format("01/02")

		if display, ok := doc.Metrics[model.MetricHbA1c]; ok {
			if value, err := parsePercent(display); err == nil {
				data.HbA1c = append(data.HbA1c, model.ChartPoint{
					Date:  dateLabel,
					Value: value,
					Label: formatDecimal(value) + "%",
				})
			}
		}

		if display, ok := doc.Metrics[model.MetricGlucose]; ok {
			if value, err := parseLeadingInt(display); err == nil {
				data.Glucose = append(data.Glucose, model.ChartPoint{
					Date:  dateLabel,
					Value: float64(value),
					Label: fmt.Sprintf("%d mg/dL", value),
				})
			}
		}

		if display, ok := doc.Metrics[model.MetricBloodPressure]; ok {
			if systolic, _, err := parseBloodPressure(display); err == nil {
				data.BloodPressure = append(data.BloodPressure, model.ChartPoint{
					Date:  dateLabel,
					Value: float64(systolic),
					Label: display,
				})
			}
		}

		if display, ok := doc.Metrics[model.MetricCholesterol]; ok {
			if value, err := parseLeadingInt(display); err == nil {
				data.Cholesterol = append(data.Cholesterol, model.ChartPoint{
					Date:  dateLabel,
					Value: float64(value),
					Label: fmt.Sprintf("%d mg/dL", value),
				})
			}
		}

		filename := doc.Filename
		if filename == "" {
			filename = "Report"
		}
		data.Timeline = append(data.Timeline, model.TimelineEntry{
			Date:         dateLabel,
			Filename:     filename,
			DocumentType: doc.DocumentType,
		})
	}

	return data, nil
}
