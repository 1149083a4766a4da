package courtapplication

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

const columns = "id, parent_application_id, prosecution_case_id, payload, created_at, updated_at"

// Repository reads the court-application read models. Parent and case
// linkage columns are extracted from the payload at write time so children
// can be found without scanning JSON.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// GetByID returns the application deserialized from its persisted payload,
// or nil, nil when no row exists.
func (r *Repository) GetByID(ctx context.Context, applicationID string) (*models.CourtApplication, error) {
	ctx, span := tracing.StartSpan(ctx, "courtapplication.Repository.GetByID")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("court_applications")
	sb.Where(sb.Equal("id", applicationID))

	query, args := sb.Build()
	var row models.ApplicationRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"application_id": applicationID}).Error("Failed to get court application")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to get court application: %v", err)
	}

	return decode(row), nil
}

// ListByParentID returns the direct children of an application, oldest
// first. Only one hop; grandchildren are not traversed.
func (r *Repository) ListByParentID(ctx context.Context, parentApplicationID string) ([]models.CourtApplication, error) {
	ctx, span := tracing.StartSpan(ctx, "courtapplication.Repository.ListByParentID")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("court_applications")
	sb.Where(sb.Equal("parent_application_id", parentApplicationID))
	sb.OrderBy("created_at ASC")

	return r.list(ctx, sb, map[string]any{"parent_application_id": parentApplicationID})
}

// ListByCaseID returns the applications made against a prosecution case,
// oldest first.
func (r *Repository) ListByCaseID(ctx context.Context, caseID string) ([]models.CourtApplication, error) {
	ctx, span := tracing.StartSpan(ctx, "courtapplication.Repository.ListByCaseID")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("court_applications")
	sb.Where(sb.Equal("prosecution_case_id", caseID))
	sb.OrderBy("created_at ASC")

	return r.list(ctx, sb, map[string]any{"case_id": caseID})
}

func (r *Repository) list(ctx context.Context, sb *sqlbuilder.SelectBuilder, fields map[string]any) ([]models.CourtApplication, error) {
	query, args := sb.Build()
	var rows []models.ApplicationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(fields).Error("Failed to list court applications")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list court applications: %v", err)
	}

	apps := make([]models.CourtApplication, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, *decode(row))
	}
	return apps, nil
}

// decode unwraps the scanned payload, backfilling linkage ids from the
// extracted columns when the payload omits them.
func decode(row models.ApplicationRow) *models.CourtApplication {
	app := row.Payload.GetValue()
	if app.ID == "" {
		app.ID = row.ID
	}
	if app.ParentApplicationID == nil {
		app.ParentApplicationID = row.ParentApplicationID
	}
	if app.ProsecutionCaseID == nil {
		app.ProsecutionCaseID = row.ProsecutionCaseID
	}
	return &app
}
