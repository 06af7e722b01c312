package provider

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		wantReason string
	}{
		{
			name:       "known code maps to canonical reason",
			status:     http.StatusBadRequest,
			body:       `{"code":400,"error_code":"invalid_credentials","msg":"Invalid login credentials"}`,
			wantCode:   "invalid_credentials",
			wantReason: ReasonInvalidCredentials,
		},
		{
			name:       "email_exists is a duplicate user",
			status:     http.StatusUnprocessableEntity,
			body:       `{"error_code":"email_exists","msg":"Email address already registered"}`,
			wantCode:   "email_exists",
			wantReason: ReasonUserExists,
		},
		{
			name:       "string code from the data api",
			status:     http.StatusConflict,
			body:       `{"code":"23505","message":"duplicate key value"}`,
			wantCode:   "23505",
			wantReason: "duplicate key value",
		},
		{
			name:       "oauth style error",
			status:     http.StatusBadRequest,
			body:       `{"error":"invalid_grant","error_description":"Email not confirmed"}`,
			wantReason: ReasonEmailNotConfirmed,
		},
		{
			name:       "unparseable body falls back to status text",
			status:     http.StatusBadGateway,
			body:       `<html>bad gateway</html>`,
			wantReason: "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := decodeError(tt.status, []byte(tt.body), "req-1")
			assert.Equal(t, tt.status, e.Status)
			assert.Equal(t, tt.wantCode, e.Code)
			assert.Equal(t, tt.wantReason, e.Reason)
			assert.Equal(t, "req-1", e.RequestID)
		})
	}
}

func TestError_UnwrapUnauthorized(t *testing.T) {
	assert.ErrorIs(t, &Error{Status: http.StatusUnauthorized}, ErrUnauthorized)
	assert.ErrorIs(t, &Error{Status: http.StatusForbidden}, ErrUnauthorized)
	assert.NotErrorIs(t, &Error{Status: http.StatusBadRequest}, ErrUnauthorized)
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "provider error 400 (weak_password): Password is too weak",
		(&Error{Status: 400, Code: "weak_password", Reason: ReasonWeakPassword}).Error())
	assert.Equal(t, "provider error 500: Internal Server Error",
		(&Error{Status: 500, Reason: "Internal Server Error"}).Error())
}

func TestReason(t *testing.T) {
	wrapped := fmt.Errorf("sign in: %w", &Error{Status: 400, Reason: ReasonEmailNotConfirmed})
	assert.Equal(t, ReasonEmailNotConfirmed, Reason(wrapped))
	assert.Empty(t, Reason(errors.New("boom")))
	assert.Empty(t, Reason(nil))
}
