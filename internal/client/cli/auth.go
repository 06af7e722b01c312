package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authdash/internal/client/authform"
	"github.com/dmitrijs2005/authdash/internal/client/strength"
)

// askLine and askSecret are the prompts used by the commands; tests swap
// them for scripted answers.
var (
	askLine   = AskLine
	askSecret = AskSecret
)

// Login prompts for email and password and submits the form in login mode.
// The password is asked again by every command, so the form drops it once
// the command returns.
func (a *App) Login(ctx context.Context) error {
	a.ensureMode(authform.ModeLogin)

	email, err := askLine(a.reader, a.out, "Enter email")
	if err != nil {
		return err
	}
	password, err := askSecret(a.out, "Enter password")
	if err != nil {
		return err
	}

	a.form.SetEmail(email)
	a.form.ChangePassword(ctx, password)
	defer a.form.SetPassword("")

	return a.report(a.form.Submit(ctx))
}

// Register prompts for username, email and password. A password the
// strength check judges weak is refused before submitting.
func (a *App) Register(ctx context.Context) error {
	a.ensureMode(authform.ModeRegister)

	username, err := askLine(a.reader, a.out, "Enter username")
	if err != nil {
		return err
	}
	email, err := askLine(a.reader, a.out, "Enter email")
	if err != nil {
		return err
	}
	password, err := askSecret(a.out, "Enter password")
	if err != nil {
		return err
	}

	a.form.SetUsername(username)
	a.form.SetEmail(email)
	a.form.ChangePassword(ctx, password)
	defer a.form.SetPassword("")
	a.form.WaitChecks()

	if a.form.Snapshot().ShowStrengthWarning() {
		a.printStrengthWarning()
		return nil
	}

	return a.report(a.form.Submit(ctx))
}

// ToggleMode switches the form between login and register.
func (a *App) ToggleMode() {
	a.form.ToggleMode()
	st := a.form.Snapshot()
	fmt.Fprintf(a.out, "Mode: %s (%s)\n", st.Title(), st.ToggleLabel())
}

// Retry repeats the profile write of an account created without one.
func (a *App) Retry(ctx context.Context) error {
	res := a.form.RetryProfile(ctx)
	if res.Outcome == authform.OutcomeIgnored {
		fmt.Fprintln(a.out, "Nothing to retry.")
		return nil
	}
	return a.report(res)
}

func (a *App) ensureMode(m authform.Mode) {
	if a.form.Snapshot().Mode != m {
		a.form.ToggleMode()
	}
}

func (a *App) report(res authform.Result) error {
	switch res.Outcome {
	case authform.OutcomeSucceeded:
		if res.Identity != nil {
			fmt.Fprintf(a.out, "Success! Signed in as %s\n", res.Identity.Email)
		} else {
			fmt.Fprintln(a.out, "Success! Check your inbox to confirm your email.")
		}
	case authform.OutcomeInvalid:
		for _, f := range res.Fields {
			fmt.Fprintln(a.out, f.Message)
		}
	case authform.OutcomeProfilePending:
		fmt.Fprintln(a.out, res.Message)
		fmt.Fprintln(a.out, "Your account was created. Type 'retry' to finish setting up your profile.")
	case authform.OutcomeIgnored:
		if a.form.Snapshot().ShowStrengthWarning() {
			a.printStrengthWarning()
		} else {
			fmt.Fprintln(a.out, "A request is already in progress.")
		}
	default:
		fmt.Fprintln(a.out, res.Message)
	}
	return res.Err
}

func (a *App) printStrengthWarning() {
	fmt.Fprintln(a.out, "Password is weak. It must:")
	for _, r := range strength.Rules() {
		fmt.Fprintf(a.out, "  - %s\n", r)
	}
}
