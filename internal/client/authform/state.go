package authform

import (
	"github.com/dmitrijs2005/authdash/internal/client/models"
)

type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

func (m Mode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

// Verdict is the outcome of the latest strength check.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictStrong
	VerdictWeak
)

func (v Verdict) String() string {
	switch v {
	case VerdictStrong:
		return "strong"
	case VerdictWeak:
		return "weak"
	default:
		return "unknown"
	}
}

func verdictOf(strong bool) Verdict {
	if strong {
		return VerdictStrong
	}
	return VerdictWeak
}

// Phase tracks what the controller knows about the account.
type Phase int

const (
	PhaseAnonymous Phase = iota
	PhaseAuthenticated
	// PhaseProfilePending: the account exists but its profile row was not
	// written.
	PhaseProfilePending
)

func (p Phase) String() string {
	switch p {
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseProfilePending:
		return "profile pending"
	default:
		return "anonymous"
	}
}

type Outcome int

const (
	// OutcomeIgnored: submit was not reachable, nothing happened.
	OutcomeIgnored Outcome = iota
	// OutcomeInvalid: a field constraint failed before the flight started.
	OutcomeInvalid
	// OutcomeRejected: rejected locally (policy or strength oracle).
	OutcomeRejected
	// OutcomeFailed: the provider or the oracle failed the request.
	OutcomeFailed
	OutcomeSucceeded
	// OutcomeProfilePending: account created, profile write failed.
	OutcomeProfilePending
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeProfilePending:
		return "profile pending"
	default:
		return "ignored"
	}
}

// Result describes one Submit or RetryProfile call. Message is the text to
// show the user; Err carries the detail for logs.
type Result struct {
	Outcome  Outcome
	Identity *models.Identity
	Message  string
	Err      error

	// Fields lists the failed constraints of an OutcomeInvalid result.
	Fields []FieldError
}

// State is a point-in-time copy of the controller for rendering. The
// password itself is never exposed.
type State struct {
	Mode        Mode
	Email       string
	Username    string
	HasPassword bool
	InFlight    bool
	Error       string
	Verdict     Verdict
	Identity    *models.Identity
	Phase       Phase
	CanSubmit   bool
}

func (s State) Title() string {
	if s.Mode == ModeRegister {
		return "Register"
	}
	return "Login"
}

func (s State) SubmitLabel() string {
	switch {
	case s.InFlight && s.Mode == ModeRegister:
		return "Registering..."
	case s.InFlight:
		return "Logging in..."
	default:
		return s.Title()
	}
}

func (s State) ToggleLabel() string {
	if s.Mode == ModeRegister {
		return "Already have an account? Login"
	}
	return "Need an account? Register"
}

func (s State) IsRegister() bool {
	return s.Mode == ModeRegister
}

// ProfilePending reports whether the account awaits its profile row.
func (s State) ProfilePending() bool {
	return s.Phase == PhaseProfilePending
}

// ShowStrengthWarning reports whether the weak-password notice applies.
func (s State) ShowStrengthWarning() bool {
	return s.Mode == ModeRegister && s.Verdict == VerdictWeak
}
