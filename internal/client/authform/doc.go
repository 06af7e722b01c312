// Package authform implements the login/register form as a state machine
// independent of any rendering surface.
//
// A Controller holds the credential draft (email, password, username), the
// current mode, the in-flight flag, the user-facing error and the latest
// password strength verdict. Front ends feed it field changes and call
// Submit; they render from Snapshot.
//
// # Submission
//
// Submit is a no-op while a request is in flight or, in register mode,
// while the last strength verdict is weak. Field-level constraints (required
// fields, email shape, minimum lengths) are checked before anything else.
// Login calls the provider's SignIn. Register applies the local password
// policy, asks the strength oracle again, calls SignUp and finally writes
// the profile row. Provider failures are mapped to fixed messages by the
// reason the provider reported; the underlying error is logged and returned
// in Result.Err but never shown.
//
// When the account is created but the profile write fails the controller
// enters PhaseProfilePending and keeps the identity; RetryProfile repeats
// the idempotent upsert.
//
// # Strength checks
//
// Every password change in register mode starts an asynchronous oracle
// check. A newer change cancels the previous check, and replies carry a
// generation number so a late reply never overwrites a newer verdict.
//
// All provider and oracle calls run under the controller's timeout.
package authform
