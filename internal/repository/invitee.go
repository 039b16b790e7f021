package repository

import (
	"context"

	"github.com/deppfellow/wedding-rsvp/internal/logger"
	"github.com/deppfellow/wedding-rsvp/internal/model"
	"github.com/deppfellow/wedding-rsvp/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const inviteeTable = "invitee"

const (
	selectInviteeSQL = `SELECT id, fname, lname, rsvp, dietary_requirements FROM invitee WHERE id = $1`

	selectInviteesSQL = `SELECT id, fname, lname, rsvp, dietary_requirements FROM invitee ` +
		`WHERE id = ANY($1::TEXT[]) ORDER BY array_position($1::TEXT[], id)`

	markOpenedSQL = `UPDATE invitee SET invitation_opened = true WHERE id = $1`

	markOpenedManySQL = `UPDATE invitee SET invitation_opened = true WHERE id = ANY($1::TEXT[])`

	updateInviteeSQL = `UPDATE invitee SET rsvp = $1, dietary_requirements = $2 WHERE id = $3 ` +
		`RETURNING id, fname, lname, rsvp, dietary_requirements`
)

type InviteeRepository struct {
	db DBTX
}

func NewInviteeRepository(db DBTX) *InviteeRepository {
	return &InviteeRepository{db: db}
}

// scanInvitee decodes one invitee row in select-list order.
func scanInvitee(row pgx.Row) (model.Invitee, error) {
	var invitee model.Invitee
	var rsvp string

	err := row.Scan(
		&invitee.ID,
		&invitee.FirstName,
		&invitee.LastName,
		&rsvp,
		&invitee.DietaryRequirements,
	)
	if err != nil {
		return model.Invitee{}, err
	}

	invitee.RSVP = model.ParseRSVP(rsvp)
	return invitee, nil
}

// GetInviteeByID loads one invitee and marks its invitation as opened.
func (r *InviteeRepository) GetInviteeByID(ctx context.Context, id string) (model.Invitee, error) {
	log := logger.FromContext(ctx).With().Str("invitee_id", id).Logger()

	invitee, err := scanInvitee(r.db.QueryRow(ctx, selectInviteeSQL, id))
	if err != nil {
		err = sqlerr.Wrap(err, "GetInviteeByID", inviteeTable, id)
		if sqlerr.IsNotFound(err) {
			log.Warn().Msg("invitee not found")
		} else {
			sqlerr.LogFields(log.Error(), err).Err(err).Msg("failed to run find invitee query")
		}
		return model.Invitee{}, err
	}

	if _, err := r.db.Exec(ctx, markOpenedSQL, id); err != nil {
		err = sqlerr.Failure(err, "GetInviteeByID")
		sqlerr.LogFields(log.Error(), err).Err(err).Msg("failed to update invitation_opened status for invitee")
		return model.Invitee{}, err
	}

	return invitee, nil
}

// GetInviteesByIDs loads every invitee in ids, in the order of ids, and marks
// them opened. Ids without a row are skipped.
func (r *InviteeRepository) GetInviteesByIDs(ctx context.Context, ids []string) ([]model.Invitee, error) {
	log := logger.FromContext(ctx).With().Strs("invitee_ids", ids).Logger()

	if len(ids) == 0 {
		return []model.Invitee{}, nil
	}

	rows, err := r.db.Query(ctx, selectInviteesSQL, ids)
	if err != nil {
		err = sqlerr.Failure(err, "GetInviteesByIDs")
		sqlerr.LogFields(log.Error(), err).Err(err).Msg("failed to run query for fetching multiple invitees")
		return nil, err
	}

	invitees, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Invitee, error) {
		return scanInvitee(row)
	})
	if err != nil {
		err = sqlerr.Failure(err, "GetInviteesByIDs")
		log.Error().Err(err).Msg("failed to parse invitees from db result")
		return nil, err
	}

	if len(invitees) != len(ids) {
		log.Warn().Int("found", len(invitees)).Msg("some related invitees have no row")
	}

	if _, err := r.db.Exec(ctx, markOpenedManySQL, ids); err != nil {
		err = sqlerr.Failure(err, "GetInviteesByIDs")
		sqlerr.LogFields(log.Error(), err).Err(err).Msg("failed to update invitees' invitation_opened status")
		return nil, err
	}

	return invitees, nil
}

// UpdateInvitee writes rsvp and dietary requirements for params.ID and
// returns the updated row.
func (r *InviteeRepository) UpdateInvitee(ctx context.Context, params model.UpdateInviteeParams) (model.Invitee, error) {
	log := logger.FromContext(ctx).With().Str("invitee_id", params.ID).Logger()

	row := r.db.QueryRow(ctx, updateInviteeSQL, params.RSVP.String(), params.DietaryRequirements, params.ID)

	invitee, err := scanInvitee(row)
	if err != nil {
		err = sqlerr.Wrap(err, "UpdateInvitee", inviteeTable, params.ID)
		if sqlerr.IsNotFound(err) {
			log.Warn().Msg("failed to find invitee")
		} else {
			sqlerr.LogFields(log.Error(), err).Err(err).Msg("failed to run query to rsvp")
		}
		return model.Invitee{}, err
	}

	log.Debug().Str("rsvp", invitee.RSVP.String()).Msg("invitee updated")
	return invitee, nil
}
