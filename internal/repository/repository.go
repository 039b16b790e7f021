// Package repository handles all interactions with the database.
//
// It contains the raw SQL for the invitee and relation tables and
// reports failures as the two sqlerr kinds: item not found and
// database failure.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Invitees  *InviteeRepository
	Relations *RelationRepository
}

// NewRepositories constructs the repository container over db.
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		Invitees:  NewInviteeRepository(db),
		Relations: NewRelationRepository(db),
	}
}
