package authform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginMessage(t *testing.T) {
	assert.Equal(t, "Incorrect email or password. Please try again.", LoginMessage("Invalid login credentials"))
	assert.Equal(t, "Please confirm your email before logging in.", LoginMessage("Email not confirmed"))
	assert.Equal(t, "An unexpected error occurred. Please try again.", LoginMessage("invalid login credentials"))
	assert.Equal(t, MsgUnexpected, LoginMessage(""))
}

func TestRegisterMessage(t *testing.T) {
	assert.Equal(t, "An account with this email already exists.", RegisterMessage("User already exists"))
	assert.Equal(t, "Password is too weak. Use a stronger password.", RegisterMessage("Password is too weak"))
	assert.Equal(t, "Registration failed. Please try again.", RegisterMessage("Invalid login credentials"))
}

func TestStateLabels(t *testing.T) {
	s := State{Mode: ModeLogin}
	assert.Equal(t, "Login", s.SubmitLabel())
	assert.Equal(t, "Need an account? Register", s.ToggleLabel())

	s = State{Mode: ModeRegister, InFlight: true}
	assert.Equal(t, "Registering...", s.SubmitLabel())
	assert.False(t, s.ShowStrengthWarning())

	s.Verdict = VerdictWeak
	assert.True(t, s.ShowStrengthWarning())
}

func TestValidateFields_AcceptsValidDraft(t *testing.T) {
	assert.Empty(t, validateFields(draft{mode: ModeRegister, email: goodEmail, password: goodPassword, username: "bob"}))
	assert.Empty(t, validateFields(draft{mode: ModeLogin, email: goodEmail, password: goodPassword}))
}

func TestValidateFields_ReportsEveryField(t *testing.T) {
	got := validateFields(draft{mode: ModeRegister})
	fields := make([]string, 0, len(got))
	for _, f := range got {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{FieldUsername, FieldEmail, FieldPassword}, fields)
}
