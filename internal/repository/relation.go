package repository

import (
	"context"

	"github.com/deppfellow/wedding-rsvp/internal/logger"
	"github.com/deppfellow/wedding-rsvp/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const selectDependentsSQL = `SELECT child FROM relation WHERE parent = $1 ORDER BY child`

type RelationRepository struct {
	db DBTX
}

func NewRelationRepository(db DBTX) *RelationRepository {
	return &RelationRepository{db: db}
}

// GetDependents returns the child ids related to parent id. An invitee
// without dependents yields an empty slice, not an error.
func (r *RelationRepository) GetDependents(ctx context.Context, id string) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.Query(ctx, selectDependentsSQL, id)
	if err != nil {
		err = sqlerr.Failure(err, "GetDependents")
		sqlerr.LogFields(log.Error(), err).Err(err).Str("parent", id).Msg("failed to run dependents query")
		return nil, err
	}

	children, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		err = sqlerr.Failure(err, "GetDependents")
		log.Error().Err(err).Str("parent", id).Msg("failed to parse dependents from db result")
		return nil, err
	}

	return children, nil
}
