package strength

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digest(pw string) (string, string) {
	sum := sha1.Sum([]byte(pw))
	d := strings.ToUpper(hex.EncodeToString(sum[:]))
	return d[:5], d[5:]
}

func rangeServer(t *testing.T, body func(prefix string) string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.Header.Get("Add-Padding"))
		prefix := strings.TrimPrefix(r.URL.Path, "/range/")
		_, _ = fmt.Fprint(w, body(prefix))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChecker_PolicyOnly(t *testing.T) {
	c := NewChecker("", nil)

	ok, err := c.Check(context.Background(), "Abcdef123456!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Check(context.Background(), "abcdef")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChecker_BreachedPasswordIsWeak(t *testing.T) {
	pw := "Abcdef123456!"
	wantPrefix, suffix := digest(pw)

	srv := rangeServer(t, func(prefix string) string {
		assert.Equal(t, wantPrefix, prefix)
		return "0018A45C4D1DEF81644B54AB7F969B88D65:1\r\n" + strings.ToLower(suffix) + ":42\r\n"
	})

	ok, err := NewChecker(srv.URL+"/range/", srv.Client()).Check(context.Background(), pw)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChecker_PaddingEntryIsNotABreach(t *testing.T) {
	pw := "Abcdef123456!"
	_, suffix := digest(pw)

	srv := rangeServer(t, func(string) string { return suffix + ":0\n" })

	ok, err := NewChecker(srv.URL+"/range", srv.Client()).Check(context.Background(), pw)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChecker_UnknownPasswordIsStrong(t *testing.T) {
	srv := rangeServer(t, func(string) string { return "0018A45C4D1DEF81644B54AB7F969B88D65:3\n" })

	ok, err := NewChecker(srv.URL+"/range", srv.Client()).Check(context.Background(), "Abcdef123456!")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChecker_PolicyFailureSkipsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("range API must not be called for a policy failure")
	}))
	defer srv.Close()

	ok, err := NewChecker(srv.URL, srv.Client()).Check(context.Background(), "short")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChecker_ServerErrorIsReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewChecker(srv.URL, srv.Client()).Check(context.Background(), "Abcdef123456!")
	require.ErrorContains(t, err, "unexpected status 503")
}

func TestOracleFunc(t *testing.T) {
	var o Oracle = OracleFunc(func(_ context.Context, pw string) (bool, error) { return pw == "yes", nil })
	ok, err := o.Check(context.Background(), "yes")
	require.NoError(t, err)
	assert.True(t, ok)
}
