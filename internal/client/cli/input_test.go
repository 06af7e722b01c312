package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskLine(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"trims newline and blanks", "  alice@example.com \n", "alice@example.com", nil},
		{"windows line ending", "bob\r\n", "bob", nil},
		{"last line without newline", "lastline", "lastline", nil},
		{"empty line", "\n", "", nil},
		{"nothing typed", "", "", io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := AskLine(bufio.NewReader(strings.NewReader(tt.in)), &out, "Enter email")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Enter email\n> ", out.String())
		})
	}
}

func TestAskLine_ReadsSuccessiveLines(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("alice\nalice@example.com\n"))
	var out bytes.Buffer

	first, err := AskLine(r, &out, "Enter username")
	require.NoError(t, err)
	second, err := AskLine(r, &out, "Enter email")
	require.NoError(t, err)

	assert.Equal(t, "alice", first)
	assert.Equal(t, "alice@example.com", second)
}

func TestAskSecret(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return []byte("Secret123!"), nil }

	var out bytes.Buffer
	got, err := AskSecret(&out, "Enter password")
	require.NoError(t, err)
	assert.Equal(t, "Secret123!", got)
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestAskSecret_Error(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	boom := errors.New("not a terminal")
	readPassword = func(int) ([]byte, error) { return nil, boom }

	var out bytes.Buffer
	_, err := AskSecret(&out, "Enter password")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "read secret")
}
