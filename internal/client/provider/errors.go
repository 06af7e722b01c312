package provider

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

var (
	ErrUnavailable  = errors.New("identity provider unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoSession    = errors.New("no active session")
)

// Reasons the provider reports for rejected requests. Matching against
// them is exact.
const (
	ReasonInvalidCredentials = "Invalid login credentials"
	ReasonEmailNotConfirmed  = "Email not confirmed"
	ReasonUserExists         = "User already exists"
	ReasonWeakPassword       = "Password is too weak"
)

var reasonByCode = map[string]string{
	"invalid_credentials": ReasonInvalidCredentials,
	"email_not_confirmed": ReasonEmailNotConfirmed,
	"user_already_exists": ReasonUserExists,
	"email_exists":        ReasonUserExists,
	"weak_password":       ReasonWeakPassword,
}

// Error is a request the provider answered with a non-2xx status.
type Error struct {
	Status    int
	Code      string
	Reason    string
	RequestID string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider error %d (%s): %s", e.Status, e.Code, e.Reason)
	}
	return fmt.Sprintf("provider error %d: %s", e.Status, e.Reason)
}

func (e *Error) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// Reason extracts the provider-reported reason from err, or "" when err
// did not come from the provider.
func Reason(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Reason
	}
	return ""
}

func decodeError(status int, body []byte, requestID string) *Error {
	r := gjson.ParseBytes(body)

	code := r.Get("error_code").String()
	if c := r.Get("code"); code == "" && c.Type == gjson.String {
		code = c.String()
	}

	var reason string
	for _, path := range []string{"msg", "message", "error_description", "error"} {
		if v := r.Get(path); v.Type == gjson.String && v.String() != "" {
			reason = v.String()
			break
		}
	}
	if canon, ok := reasonByCode[code]; ok {
		reason = canon
	}
	if reason == "" {
		reason = http.StatusText(status)
	}

	return &Error{Status: status, Code: code, Reason: reason, RequestID: requestID}
}
