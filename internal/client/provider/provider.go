package provider

import (
	"context"

	"github.com/dmitrijs2005/authdash/internal/client/models"
)

// Provider is the full capability set of the identity provider.
//
// Contract:
//   - SignIn / SignUp: authenticate or create an account; a returned
//     session is persisted for later GetCurrentUser calls.
//   - GetCurrentUser: the signed-in identity, or nil when there is none.
//   - SignOut: end the session remotely and forget it locally.
//   - UpsertProfile: insert-or-replace the profile row keyed by id.
//
// All methods must honor context cancellation/timeouts.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*models.Identity, error)
	SignUp(ctx context.Context, email, password, username string) (*models.Identity, error)
	GetCurrentUser(ctx context.Context) (*models.Identity, error)
	SignOut(ctx context.Context) error
	UpsertProfile(ctx context.Context, profile models.Profile) error
}

// SessionStore keeps the provider session between runs. Load returns
// (nil, nil) when nothing is stored.
type SessionStore interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}
