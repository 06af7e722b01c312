package profiles

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authdash/internal/client/models"
	"github.com/dmitrijs2005/authdash/internal/dbx"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert inserts p or replaces the existing row with it, like the provider
// REST upsert does. created_at is taken from p; a retried write carries the
// original sign-up time.
func (r *PostgresRepository) Upsert(ctx context.Context, p models.Profile) error {
	if _, err := uuid.Parse(p.ID); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidID, p.ID, err)
	}

	query :=
		`INSERT INTO profiles (id, email, username, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET email = EXCLUDED.email, username = EXCLUDED.username,
		     created_at = EXCLUDED.created_at, updated_at = now()
		 `

	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Email, p.Username, p.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
