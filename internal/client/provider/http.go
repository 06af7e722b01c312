package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/authdash/internal/client/models"
	"github.com/dmitrijs2005/authdash/internal/logging"
	"github.com/dmitrijs2005/authdash/internal/netx"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const (
	headerAPIKey    = "apikey"
	headerRequestID = "X-Request-Id"

	pathSignIn  = "/auth/v1/token?grant_type=password"
	pathRefresh = "/auth/v1/token?grant_type=refresh_token"
	pathSignUp  = "/auth/v1/signup"
	pathUser    = "/auth/v1/user"
	pathLogout  = "/auth/v1/logout"
	pathProfile = "/rest/v1/profiles?on_conflict=id"
)

// HTTPProvider is a Provider backed by a GoTrue/PostgREST compatible API.
type HTTPProvider struct {
	baseURL  string
	apiKey   string
	client   *http.Client
	sessions SessionStore
	logger   logging.Logger
	now      func() time.Time
}

// NewHTTPProvider constructs an HTTPProvider. baseURL is the project URL
// without the /auth/v1 suffix; apiKey is the public (anon) key.
func NewHTTPProvider(baseURL, apiKey string, client *http.Client, sessions SessionStore, logger logging.Logger) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		client:   client,
		sessions: sessions,
		logger:   logger.With("module", "provider"),
		now:      time.Now,
	}
}

// SignIn exchanges email and password for a session and stores it.
func (p *HTTPProvider) SignIn(ctx context.Context, email, password string) (*models.Identity, error) {
	resp, err := p.call(ctx, http.MethodPost, pathSignIn, "", nil,
		map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	sess := p.parseSession(ctx, gjson.ParseBytes(resp.Body))
	if sess == nil {
		return nil, errors.New("sign in: response carries no session")
	}
	if err := p.saveSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess.User, nil
}

// SignUp creates an account with username stored in the user metadata.
// When the provider requires email confirmation no session is issued and
// only the new identity is returned.
func (p *HTTPProvider) SignUp(ctx context.Context, email, password, username string) (*models.Identity, error) {
	resp, err := p.call(ctx, http.MethodPost, pathSignUp, "", nil, map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"username": username},
	})
	if err != nil {
		return nil, err
	}

	r := gjson.ParseBytes(resp.Body)
	if sess := p.parseSession(ctx, r); sess != nil {
		if err := p.saveSession(ctx, sess); err != nil {
			return nil, err
		}
		return sess.User, nil
	}
	return parseUser(r), nil
}

// GetCurrentUser returns the identity behind the stored session, or nil
// when no usable session exists. An expired or rejected access token is
// refreshed once; a session the provider no longer accepts is forgotten.
func (p *HTTPProvider) GetCurrentUser(ctx context.Context) (*models.Identity, error) {
	sess, err := p.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}

	refreshed := false
	if sess.Expired(p.now()) {
		if sess, err = p.refresh(ctx, sess); err != nil {
			return p.dropSession(ctx, err)
		}
		refreshed = true
	}

	user, err := p.fetchUser(ctx, sess)
	if errors.Is(err, ErrUnauthorized) && !refreshed {
		if sess, err = p.refresh(ctx, sess); err == nil {
			user, err = p.fetchUser(ctx, sess)
		}
	}
	if err != nil {
		return p.dropSession(ctx, err)
	}
	return user, nil
}

// SignOut revokes the stored session and clears it locally. The local copy
// is cleared even when the provider cannot be reached.
func (p *HTTPProvider) SignOut(ctx context.Context) error {
	sess, err := p.sessions.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil
	}

	_, callErr := p.call(ctx, http.MethodPost, pathLogout, sess.AccessToken, nil, nil)

	if err := p.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if callErr != nil && !errors.Is(callErr, ErrUnauthorized) {
		return fmt.Errorf("sign out: %w", callErr)
	}
	return nil
}

// UpsertProfile writes the profile row, replacing any row with the same id.
func (p *HTTPProvider) UpsertProfile(ctx context.Context, profile models.Profile) error {
	var bearer string
	sess, err := p.sessions.Load(ctx)
	if err != nil {
		p.logger.Warn(ctx, "session unavailable for profile upsert", "error", err)
	} else if sess != nil {
		bearer = sess.AccessToken
	}

	row := map[string]any{
		"id":         profile.ID,
		"email":      profile.Email,
		"username":   profile.Username,
		"created_at": profile.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	header := http.Header{"Prefer": {"resolution=merge-duplicates,return=minimal"}}

	if _, err := p.call(ctx, http.MethodPost, pathProfile, bearer, header, []any{row}); err != nil {
		return fmt.Errorf("upsert profile %s: %w", profile.ID, err)
	}
	return nil
}

func (p *HTTPProvider) fetchUser(ctx context.Context, sess *models.Session) (*models.Identity, error) {
	resp, err := p.call(ctx, http.MethodGet, pathUser, sess.AccessToken, nil, nil)
	if err != nil {
		return nil, err
	}
	return parseUser(gjson.ParseBytes(resp.Body)), nil
}

func (p *HTTPProvider) refresh(ctx context.Context, sess *models.Session) (*models.Session, error) {
	if sess.RefreshToken == "" {
		return nil, ErrNoSession
	}

	resp, err := p.call(ctx, http.MethodPost, pathRefresh, "", nil,
		map[string]string{"refresh_token": sess.RefreshToken})
	if err != nil {
		return nil, err
	}

	next := p.parseSession(ctx, gjson.ParseBytes(resp.Body))
	if next == nil {
		return nil, errors.New("refresh: response carries no session")
	}
	if next.User == nil {
		next.User = sess.User
	}
	if err := p.saveSession(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// dropSession forgets the stored session when the provider rejected it.
// Transport failures keep it: the provider may simply be unreachable.
func (p *HTTPProvider) dropSession(ctx context.Context, cause error) (*models.Identity, error) {
	var pe *Error
	if !errors.As(cause, &pe) && !errors.Is(cause, ErrNoSession) {
		return nil, cause
	}

	p.logger.Info(ctx, "stored session rejected, clearing it", "error", cause)
	if err := p.sessions.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear session: %w", err)
	}
	return nil, nil
}

func (p *HTTPProvider) saveSession(ctx context.Context, sess *models.Session) error {
	if err := p.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (p *HTTPProvider) call(ctx context.Context, method, path, bearer string, header http.Header, body any) (*netx.Response, error) {
	reqID := uuid.NewString()

	h := header.Clone()
	if h == nil {
		h = http.Header{}
	}
	if bearer == "" {
		bearer = p.apiKey
	}
	h.Set(headerAPIKey, p.apiKey)
	h.Set(headerRequestID, reqID)
	h.Set("Authorization", "Bearer "+bearer)

	resp, err := netx.Do(ctx, p.client, netx.Request{Method: method, URL: p.baseURL + path, Header: h, Body: body})
	if err != nil {
		p.logger.Warn(ctx, "provider request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	p.logger.Debug(ctx, "provider request", "method", method, "path", path, "status", resp.Status, "request_id", reqID)
	if !resp.OK() {
		return nil, decodeError(resp.Status, resp.Body, reqID)
	}
	return resp, nil
}

// parseSession returns nil when r carries no access token.
func (p *HTTPProvider) parseSession(ctx context.Context, r gjson.Result) *models.Session {
	access := r.Get("access_token").String()
	if access == "" {
		return nil
	}

	sess := &models.Session{
		AccessToken:  access,
		RefreshToken: r.Get("refresh_token").String(),
		User:         parseUser(r.Get("user")),
	}

	exp, err := tokenExpiry(access)
	switch {
	case err == nil && !exp.IsZero():
		sess.ExpiresAt = exp
	case r.Get("expires_at").Exists():
		sess.ExpiresAt = time.Unix(r.Get("expires_at").Int(), 0)
	case r.Get("expires_in").Exists():
		sess.ExpiresAt = p.now().Add(time.Duration(r.Get("expires_in").Int()) * time.Second)
	}
	if err != nil {
		p.logger.Debug(ctx, "access token is not a readable JWT", "error", err)
	}
	return sess
}

func parseUser(r gjson.Result) *models.Identity {
	id := r.Get("id").String()
	if id == "" {
		return nil
	}

	u := &models.Identity{
		ID:       id,
		Email:    r.Get("email").String(),
		Username: r.Get("user_metadata.username").String(),
	}
	if v := r.Get("email_confirmed_at"); v.Type == gjson.String {
		u.EmailConfirmedAt = v.Time()
	}
	if v := r.Get("created_at"); v.Type == gjson.String {
		u.CreatedAt = v.Time()
	}
	return u
}
