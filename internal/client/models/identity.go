// Package models defines the client-side records exchanged with the identity
// provider and the local caches.
package models

import "time"

// Identity is the user record owned by the identity provider. The client
// only reads it.
type Identity struct {
	// ID is the provider-assigned user id (a UUID for GoTrue providers).
	ID string

	Email string

	// Username comes from the user metadata written at sign-up.
	Username string

	// EmailConfirmedAt is zero while the address is unconfirmed.
	EmailConfirmedAt time.Time

	CreatedAt time.Time
}

// Confirmed reports whether the provider has confirmed the email address.
func (i *Identity) Confirmed() bool {
	return i != nil && !i.EmailConfirmedAt.IsZero()
}

// Session is the token pair issued by the provider at sign-in.
type Session struct {
	AccessToken  string
	RefreshToken string

	// ExpiresAt is when AccessToken stops being accepted.
	ExpiresAt time.Time

	User *Identity
}

// Expired reports whether the access token is past its expiry at now.
// A zero ExpiresAt never expires.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Profile is the application-side row keyed by the identity id.
type Profile struct {
	ID        string
	Email     string
	Username  string
	CreatedAt time.Time
}
