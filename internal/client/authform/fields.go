package authform

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/authdash/internal/client/strength"
)

const MinUsernameLength = 3

var ErrInvalidField = errors.New("invalid field")

const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldUsername = "username"
)

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e FieldError) Unwrap() error {
	return ErrInvalidField
}

type draft struct {
	mode     Mode
	email    string
	password string
	username string
}

// validateFields applies the form's input constraints: required fields,
// email shape, minimum lengths. The username is only part of the register
// form.
func validateFields(d draft) []FieldError {
	var errs []FieldError

	if d.mode == ModeRegister {
		switch n := utf8.RuneCountInString(strings.TrimSpace(d.username)); {
		case n == 0:
			errs = append(errs, FieldError{FieldUsername, "Username is required."})
		case n < MinUsernameLength:
			errs = append(errs, FieldError{FieldUsername, "Username must be at least 3 characters."})
		}
	}

	switch {
	case d.email == "":
		errs = append(errs, FieldError{FieldEmail, "Email is required."})
	case !validEmail(d.email):
		errs = append(errs, FieldError{FieldEmail, "Enter a valid email address."})
	}

	switch n := utf8.RuneCountInString(d.password); {
	case n == 0:
		errs = append(errs, FieldError{FieldPassword, "Password is required."})
	case n < strength.MinLength:
		errs = append(errs, FieldError{FieldPassword, "Password must be at least 12 characters."})
	}

	return errs
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s, "@")
}

func joinFieldErrors(fields []FieldError) error {
	errs := make([]error, len(fields))
	for i, f := range fields {
		errs[i] = f
	}
	return errors.Join(errs...)
}
