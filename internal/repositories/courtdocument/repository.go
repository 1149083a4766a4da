package courtdocument

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/juniper/pkg/database"
	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

// Repository reads the court-document read models. Documents are stored as
// JSON payloads; category lookups go through jsonb expressions over the
// single populated documentCategory key.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// GetByID returns the document deserialized from its persisted payload, or
// nil, nil when no row exists.
func (r *Repository) GetByID(ctx context.Context, documentID string) (*models.CourtDocument, error) {
	ctx, span := tracing.StartSpan(ctx, "courtdocument.Repository.GetByID")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "payload", "created_at", "updated_at")
	sb.From("court_documents")
	sb.Where(sb.Equal("id", documentID))

	query, args := sb.Build()
	var row models.CourtDocumentRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"court_document_id": documentID}).Error("Failed to get court document")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to get court document: %v", err)
	}

	return decode(row), nil
}

// GetBatch returns the documents for the given ids, skipping absent ones.
// Callers bound the id list width before calling.
func (r *Repository) GetBatch(ctx context.Context, documentIDs []string) ([]models.CourtDocument, error) {
	ctx, span := tracing.StartSpan(ctx, "courtdocument.Repository.GetBatch")
	defer span.End()

	if len(documentIDs) == 0 {
		return []models.CourtDocument{}, nil
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "payload", "created_at", "updated_at")
	sb.From("court_documents")
	sb.Where(sb.In("id", sqlbuilder.List(documentIDs)))

	query, args := sb.Build()
	var rows []models.CourtDocumentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"document_count": len(documentIDs)}).Error("Failed to get court document batch")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to get court documents: %v", err)
	}

	return decodeAll(rows), nil
}

// ListByCaseID returns the documents whose category references the case:
// case- and defendant-level documents keyed on the case id plus NOW
// documents whose case id set contains it.
func (r *Repository) ListByCaseID(ctx context.Context, caseID string) ([]models.CourtDocument, error) {
	ctx, span := tracing.StartSpan(ctx, "courtdocument.Repository.ListByCaseID")
	defer span.End()

	query := `
		SELECT id, payload, created_at, updated_at
		FROM court_documents
		WHERE (payload -> 'documentCategory' -> 'caseDocument' ->> 'prosecutionCaseId') = $1
		   OR (payload -> 'documentCategory' -> 'defendantDocument' ->> 'prosecutionCaseId') = $1
		   OR (payload -> 'documentCategory' -> 'applicationDocument' ->> 'prosecutionCaseId') = $1
		   OR (payload -> 'documentCategory' -> 'nowDocument' -> 'prosecutionCaseIds') @> to_jsonb($1::text)
		ORDER BY created_at DESC
	`

	var rows []models.CourtDocumentRow
	if err := r.db.SelectContext(ctx, &rows, query, caseID); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"case_id": caseID}).Error("Failed to list court documents by case")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list court documents: %v", err)
	}

	return decodeAll(rows), nil
}

// ListByApplicationID returns the application-level documents for one
// application.
func (r *Repository) ListByApplicationID(ctx context.Context, applicationID string) ([]models.CourtDocument, error) {
	ctx, span := tracing.StartSpan(ctx, "courtdocument.Repository.ListByApplicationID")
	defer span.End()

	query := `
		SELECT id, payload, created_at, updated_at
		FROM court_documents
		WHERE (payload -> 'documentCategory' -> 'applicationDocument' ->> 'applicationId') = $1
		ORDER BY created_at DESC
	`

	var rows []models.CourtDocumentRow
	if err := r.db.SelectContext(ctx, &rows, query, applicationID); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"application_id": applicationID}).Error("Failed to list court documents by application")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list court documents: %v", err)
	}

	return decodeAll(rows), nil
}

func decodeAll(rows []models.CourtDocumentRow) []models.CourtDocument {
	docs := make([]models.CourtDocument, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, *decode(row))
	}
	return docs
}

// decode unwraps the scanned payload. The exactly-one-category invariant is
// enforced during the jsonb scan, so a row that reaches here is well formed.
func decode(row models.CourtDocumentRow) *models.CourtDocument {
	doc := row.Payload.GetValue()
	if doc.ID == "" {
		doc.ID = row.ID
	}
	return &doc
}
