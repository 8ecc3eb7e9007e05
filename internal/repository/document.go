package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meditwin/backend/internal/security"
	"github.com/meditwin/backend/pkg/model"
	"go.uber.org/zap"
)

// ErrDocumentNotFound is returned when no document matches the user and id
var ErrDocumentNotFound = errors.New("document not found")

// DocumentRepository manages stored medical documents. Raw report text is
// encrypted at rest; metrics are stored as JSONB so history queries never
// need decryption.
type DocumentRepository struct {
	db        *pgxpool.Pool
	encryptor *security.Encryptor
	logger    *zap.Logger
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool, encryptor *security.Encryptor, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:        db,
		encryptor: encryptor,
		logger:    logger,
	}
}

// Save persists a new document
func (r *DocumentRepository) Save(ctx context.Context, doc *model.Document) error {
	encryptedText, err := r.encryptor.Encrypt(doc.RawText)
	if err != nil {
		return fmt.Errorf("failed to encrypt document text: %w", err)
	}

	query := `
		INSERT INTO documents (
			id, user_id, filename, upload_date, raw_text,
			document_type, is_diabetes_report, report_date,
			metrics, validation_status, blob_path, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
	`

	_, err = r.db.Exec(ctx, query,
		doc.ID,
		doc.UserID,
		doc.Filename,
		doc.UploadDate,
		encryptedText,
		doc.DocumentType,
		doc.IsDiabetesReport,
		doc.ReportDate,
		doc.Metrics,
		doc.ValidationStatus,
		doc.BlobPath,
	)

	if err != nil {
		r.logger.Error("failed to save document",
			zap.Error(err),
			zap.String("document_id", doc.ID),
			zap.String("user_id", doc.UserID),
		)
		return fmt.Errorf("failed to save document: %w", err)
	}

	return nil
}

// GetByID retrieves one document, decrypting its raw text
func (r *DocumentRepository) GetByID(ctx context.Context, userID, documentID string) (*model.Document, error) {
	query := `
		SELECT
			id, user_id, filename, upload_date, raw_text,
			document_type, is_diabetes_report, report_date,
			metrics, validation_status, blob_path, created_at
		FROM documents
		WHERE user_id = $1 AND id = $2
	`

	doc, err := r.scanDocument(r.db.QueryRow(ctx, query, userID, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		r.logger.Error("failed to get document",
			zap.Error(err),
			zap.String("document_id", documentID),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return doc, nil
}

// ListByUser retrieves all documents for a user, newest first
func (r *DocumentRepository) ListByUser(ctx context.Context, userID string) ([]*model.Document, error) {
	query := `
		SELECT
			id, user_id, filename, upload_date, raw_text,
			document_type, is_diabetes_report, report_date,
			metrics, validation_status, blob_path, created_at
		FROM documents
		WHERE user_id = $1
		ORDER BY upload_date DESC
	`

	return r.queryDocuments(ctx, query, userID)
}

// ListChronological retrieves all documents for a user, oldest first
func (r *DocumentRepository) ListChronological(ctx context.Context, userID string) ([]*model.Document, error) {
	query := `
		SELECT
			id, user_id, filename, upload_date, raw_text,
			document_type, is_diabetes_report, report_date,
			metrics, validation_status, blob_path, created_at
		FROM documents
		WHERE user_id = $1
		ORDER BY upload_date ASC
	`

	return r.queryDocuments(ctx, query, userID)
}

// ListRecent retrieves the metric history for trend comparison: id, upload
// date, and metrics of the most recent documents, newest first. No text
// columns, so nothing to decrypt.
func (r *DocumentRepository) ListRecent(ctx context.Context, userID string, limit int) ([]model.MetricHistoryEntry, error) {
	query := `
		SELECT id, upload_date, metrics
		FROM documents
		WHERE user_id = $1
		ORDER BY upload_date DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error("failed to list recent documents", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list recent documents: %w", err)
	}
	defer rows.Close()

	var history []model.MetricHistoryEntry
	for rows.Next() {
		var entry model.MetricHistoryEntry
		if err := rows.Scan(&entry.ID, &entry.UploadDate, &entry.Metrics); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		history = append(history, entry)
	}

	return history, rows.Err()
}

// Delete removes a document
func (r *DocumentRepository) Delete(ctx context.Context, userID, documentID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM documents WHERE user_id = $1 AND id = $2`, userID, documentID)
	if err != nil {
		r.logger.Error("failed to delete document",
			zap.Error(err),
			zap.String("document_id", documentID),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

func (r *DocumentRepository) queryDocuments(ctx context.Context, query, userID string) ([]*model.Document, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to list documents", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*model.Document
	for rows.Next() {
		doc, err := r.scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

func (r *DocumentRepository) scanDocument(row pgx.Row) (*model.Document, error) {
	var doc model.Document
	var encryptedText string

	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Filename,
		&doc.UploadDate,
		&encryptedText,
		&doc.DocumentType,
		&doc.IsDiabetesReport,
		&doc.ReportDate,
		&doc.Metrics,
		&doc.ValidationStatus,
		&doc.BlobPath,
		&doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.RawText, err = r.encryptor.Decrypt(encryptedText)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt document text: %w", err)
	}

	return &doc, nil
}
