package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-u", "http://idp.local", "-x", "1"},
			allowedFlags: []string{"-u"},
			want:         []string{"-u", "http://idp.local"},
		},
		{
			name:         "equals form",
			args:         []string{"-t=5", "-u", "http://idp.local"},
			allowedFlags: []string{"-t"},
			want:         []string{"-t=5"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "trailing flag without value kept",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-c", "-u", "http://idp.local"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "repeated flag preserved in order",
			args:         []string{"-k", "one", "-k", "two"},
			allowedFlags: []string{"-k"},
			want:         []string{"-k", "one", "-k", "two"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	assert.Equal(t, "/etc/authdash.json", JsonConfigFlags([]string{"-c", "/etc/authdash.json"}))
	assert.Equal(t, "/tmp/a.json", JsonConfigFlags([]string{"-u", "x", "-config", "/tmp/a.json"}))
	assert.Equal(t, "/tmp/b.json", JsonConfigFlags([]string{"-c", "/tmp/a.json", "-config=/tmp/b.json"}))
	assert.Empty(t, JsonConfigFlags([]string{"-u", "http://idp.local"}))
}
