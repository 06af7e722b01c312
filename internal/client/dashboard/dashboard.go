// Package dashboard shows who is signed in.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/authdash/internal/client/models"
	"github.com/dmitrijs2005/authdash/internal/logging"
)

const (
	Heading      = "Welcome to Your Dashboard"
	MsgLoggedOut = "Please log in to view your dashboard"
)

// UserSource is the part of the identity provider the dashboard needs.
type UserSource interface {
	GetCurrentUser(ctx context.Context) (*models.Identity, error)
	SignOut(ctx context.Context) error
}

type View struct {
	Loading  bool
	Identity *models.Identity
}

// Model loads the current identity in the background. It starts in the
// loading state.
type Model struct {
	src     UserSource
	logger  logging.Logger
	timeout time.Duration

	mu       sync.Mutex
	loading  bool
	identity *models.Identity
	gen      uint64
	done     chan struct{}
}

func New(src UserSource, logger logging.Logger, timeout time.Duration) *Model {
	return &Model{
		src:     src,
		logger:  logger.With("module", "dashboard"),
		timeout: timeout,
		loading: true,
	}
}

// Mount starts loading the current identity and returns a channel closed
// when this load has finished. Errors are logged and leave the view
// anonymous. Only the latest Mount updates the view.
func (m *Model) Mount(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.loading = true
	m.done = done
	m.mu.Unlock()

	go func() {
		defer close(done)

		tctx, cancel := m.withTimeout(ctx)
		defer cancel()
		id, err := m.src.GetCurrentUser(tctx)
		if err != nil {
			m.logger.Error(ctx, "error fetching user", "error", err)
			id = nil
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		if gen != m.gen {
			return
		}
		m.identity = id
		m.loading = false
	}()

	return done
}

// Wait blocks until the latest load has finished.
func (m *Model) Wait() {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (m *Model) Snapshot() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := View{Loading: m.loading}
	if m.identity != nil {
		cp := *m.identity
		v.Identity = &cp
	}
	return v
}

// Logout ends the provider session. The view is left as is; callers mount
// again to refresh it.
func (m *Model) Logout(ctx context.Context) error {
	tctx, cancel := m.withTimeout(ctx)
	defer cancel()

	if err := m.src.SignOut(tctx); err != nil {
		m.logger.Error(ctx, "logout error", "error", err)
		return fmt.Errorf("logout: %w", err)
	}
	m.logger.Info(ctx, "user logged out")
	return nil
}

func (m *Model) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.timeout)
}

// Render writes v as plain text.
func Render(w io.Writer, v View) error {
	if v.Loading {
		_, err := fmt.Fprintln(w, "Loading...")
		return err
	}

	if _, err := fmt.Fprintln(w, Heading); err != nil {
		return err
	}
	if v.Identity == nil {
		_, err := fmt.Fprintln(w, MsgLoggedOut)
		return err
	}
	_, err := fmt.Fprintf(w, "Email: %s\nUser ID: %s\n", v.Identity.Email, v.Identity.ID)
	return err
}
