package dashboard

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/authdash/internal/client/models"
	"github.com/dmitrijs2005/authdash/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	user       *models.Identity
	err        error
	signOutErr error
	block      chan struct{}
	signOuts   int
}

func (f *fakeSource) GetCurrentUser(ctx context.Context) (*models.Identity, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.user, f.err
}

func (f *fakeSource) SignOut(context.Context) error {
	f.signOuts++
	return f.signOutErr
}

func TestModel_StartsLoading(t *testing.T) {
	m := New(&fakeSource{}, logging.Discard(), time.Second)
	assert.True(t, m.Snapshot().Loading)
}

func TestModel_MountResolvesIdentity(t *testing.T) {
	src := &fakeSource{user: &models.Identity{ID: "u-1", Email: "a@b.com"}, block: make(chan struct{})}
	m := New(src, logging.Discard(), time.Second)

	m.Mount(context.Background())
	assert.True(t, m.Snapshot().Loading)

	close(src.block)
	m.Wait()

	v := m.Snapshot()
	assert.False(t, v.Loading)
	require.NotNil(t, v.Identity)
	assert.Equal(t, "u-1", v.Identity.ID)
}

func TestModel_MountErrorRendersAnonymous(t *testing.T) {
	m := New(&fakeSource{err: errors.New("boom")}, logging.Discard(), time.Second)
	m.Mount(context.Background())
	m.Wait()

	v := m.Snapshot()
	assert.False(t, v.Loading)
	assert.Nil(t, v.Identity)
}

func TestModel_MountTimesOut(t *testing.T) {
	src := &fakeSource{user: &models.Identity{ID: "u-1"}, block: make(chan struct{})}
	m := New(src, logging.Discard(), 10*time.Millisecond)
	m.Mount(context.Background())
	m.Wait()

	v := m.Snapshot()
	assert.False(t, v.Loading)
	assert.Nil(t, v.Identity)
}

func TestModel_Logout(t *testing.T) {
	src := &fakeSource{user: &models.Identity{ID: "u-1"}}
	m := New(src, logging.Discard(), time.Second)
	m.Mount(context.Background())
	m.Wait()

	require.NoError(t, m.Logout(context.Background()))
	assert.Equal(t, 1, src.signOuts)
	assert.NotNil(t, m.Snapshot().Identity)

	src.signOutErr = errors.New("offline")
	err := m.Logout(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, src.signOutErr)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		view View
		want string
	}{
		{"loading", View{Loading: true}, "Loading...\n"},
		{"anonymous", View{}, "Welcome to Your Dashboard\nPlease log in to view your dashboard\n"},
		{
			"signed in",
			View{Identity: &models.Identity{ID: "u-1", Email: "a@b.com"}},
			"Welcome to Your Dashboard\nEmail: a@b.com\nUser ID: u-1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, tt.view))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

// slowFirstSource holds its first GetCurrentUser call until release closes.
type slowFirstSource struct {
	calls   atomic.Int32
	release chan struct{}
	user    *models.Identity
}

func (s *slowFirstSource) GetCurrentUser(ctx context.Context) (*models.Identity, error) {
	if s.calls.Add(1) == 1 {
		<-s.release
		return nil, nil
	}
	return s.user, nil
}

func (s *slowFirstSource) SignOut(context.Context) error { return nil }

func TestModel_MountDoneDoesNotWaitForOtherLoads(t *testing.T) {
	src := &slowFirstSource{release: make(chan struct{}), user: &models.Identity{ID: "u-1"}}
	t.Cleanup(func() { close(src.release) })
	m := New(src, logging.Discard(), 0)

	slow := m.Mount(context.Background())
	fast := m.Mount(context.Background())

	select {
	case <-fast:
	case <-time.After(time.Second):
		t.Fatal("second load waited for the first")
	}
	m.Wait()

	select {
	case <-slow:
		t.Fatal("first load finished before release")
	default:
	}
	v := m.Snapshot()
	assert.False(t, v.Loading)
	require.NotNil(t, v.Identity)
	assert.Equal(t, "u-1", v.Identity.ID)
}

func TestModel_ConcurrentMountAndWait(t *testing.T) {
	m := New(&fakeSource{user: &models.Identity{ID: "u-1"}}, logging.Discard(), time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-m.Mount(context.Background())
		}()
		go func() {
			defer wg.Done()
			m.Wait()
		}()
	}
	wg.Wait()
	m.Wait()

	v := m.Snapshot()
	assert.False(t, v.Loading)
	require.NotNil(t, v.Identity)
}

func TestModel_WaitBeforeMount(t *testing.T) {
	m := New(&fakeSource{}, logging.Discard(), time.Second)
	m.Wait()
	assert.True(t, m.Snapshot().Loading)
}
