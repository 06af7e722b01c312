package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authdash/internal/client/models"
	"github.com/dmitrijs2005/authdash/internal/dbx"
	"github.com/goccy/go-json"
)

// userRecord is the stored form of models.Identity.
type userRecord struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username,omitempty"`
	EmailConfirmedAt time.Time `json:"email_confirmed_at"`
	CreatedAt        time.Time `json:"created_at"`
}

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Load(ctx context.Context) (*models.Session, error) {
	var (
		s        models.Session
		expires  int64
		userJSON []byte
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT access_token, refresh_token, expires_at, user_json FROM session WHERE id = 1`,
	).Scan(&s.AccessToken, &s.RefreshToken, &expires, &userJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if expires != 0 {
		s.ExpiresAt = time.UnixMilli(expires)
	}
	if len(userJSON) > 0 {
		var u userRecord
		if err := json.Unmarshal(userJSON, &u); err != nil {
			return nil, fmt.Errorf("failed to decode session user: %w", err)
		}
		s.User = &models.Identity{
			ID:               u.ID,
			Email:            u.Email,
			Username:         u.Username,
			EmailConfirmedAt: u.EmailConfirmedAt,
			CreatedAt:        u.CreatedAt,
		}
	}
	return &s, nil
}

// Save replaces the stored session with s.
func (r *SQLiteRepository) Save(ctx context.Context, s *models.Session) error {
	if s == nil {
		return r.Clear(ctx)
	}

	var userJSON []byte
	if s.User != nil {
		b, err := json.Marshal(userRecord{
			ID:               s.User.ID,
			Email:            s.User.Email,
			Username:         s.User.Username,
			EmailConfirmedAt: s.User.EmailConfirmedAt,
			CreatedAt:        s.User.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to encode session user: %w", err)
		}
		userJSON = b
	}

	var expires int64
	if !s.ExpiresAt.IsZero() {
		expires = s.ExpiresAt.UnixMilli()
	}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM session`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO session (id, access_token, refresh_token, expires_at, user_json, saved_at)
			VALUES (1, ?, ?, ?, ?, ?)
		`, s.AccessToken, s.RefreshToken, expires, userJSON, r.now().UnixMilli())
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
