package hearing

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

// Repository reads the hearing read models
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// GetByID returns the hearing deserialized from its persisted payload, or
// nil, nil when no row exists.
func (r *Repository) GetByID(ctx context.Context, hearingID string) (*models.Hearing, error) {
	ctx, span := tracing.StartSpan(ctx, "hearing.Repository.GetByID")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "payload", "created_at", "updated_at")
	sb.From("hearings")
	sb.Where(sb.Equal("id", hearingID))

	query, args := sb.Build()
	var row models.HearingRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"hearing_id": hearingID}).Error("Failed to get hearing")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to get hearing: %v", err)
	}

	h := row.Payload.GetValue()
	if h.ID == "" {
		h.ID = row.ID
	}
	return &h, nil
}
