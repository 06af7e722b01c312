// Package provider talks to the hosted identity provider that owns every
// account: sign-in, sign-up, current user, sign-out and the profile upsert.
//
// # Overview
//
// Provider is the transport-agnostic capability set. HTTPProvider implements
// it against a GoTrue/PostgREST compatible backend:
//
//	POST {url}/auth/v1/token?grant_type=password     sign in
//	POST {url}/auth/v1/signup                        sign up
//	POST {url}/auth/v1/token?grant_type=refresh_token
//	GET  {url}/auth/v1/user                          current user
//	POST {url}/auth/v1/logout                        sign out
//	POST {url}/rest/v1/profiles?on_conflict=id       profile upsert
//
// Sessions returned at sign-in are kept in a SessionStore so the dashboard
// can find the current user after a restart.
//
// # Error Handling
//
// Rejections reported by the provider come back as *Error, whose Reason is
// normalized to the Reason* constants when the provider sends a known
// error_code. Transport failures and timeouts match ErrUnavailable, and
// 401/403 responses match ErrUnauthorized, via errors.Is.
package provider
