package authform

import (
	"github.com/dmitrijs2005/authdash/internal/client/provider"
)

// User-facing messages.
const (
	MsgPolicyRejected     = "Password does not meet security requirements."
	MsgWeakPassword       = "Password is too weak. Please choose a stronger password."
	MsgUnexpected         = "An unexpected error occurred. Please try again."
	MsgRegistrationFailed = "Registration failed. Please try again."

	MsgIncorrectCredentials = "Incorrect email or password. Please try again."
	MsgEmailNotConfirmed    = "Please confirm your email before logging in."
	MsgAccountExists        = "An account with this email already exists."
	MsgProviderWeakPassword = "Password is too weak. Use a stronger password."
)

var loginMessages = map[string]string{
	provider.ReasonInvalidCredentials: MsgIncorrectCredentials,
	provider.ReasonEmailNotConfirmed:  MsgEmailNotConfirmed,
}

var registerMessages = map[string]string{
	provider.ReasonUserExists:   MsgAccountExists,
	provider.ReasonWeakPassword: MsgProviderWeakPassword,
}

// LoginMessage maps a sign-in failure reason to its message.
func LoginMessage(reason string) string {
	if m, ok := loginMessages[reason]; ok {
		return m
	}
	return MsgUnexpected
}

// RegisterMessage maps a sign-up failure reason to its message.
func RegisterMessage(reason string) string {
	if m, ok := registerMessages[reason]; ok {
		return m
	}
	return MsgRegistrationFailed
}
