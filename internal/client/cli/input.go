package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword reads from the terminal with echo off. Tests replace it.
var readPassword = term.ReadPassword

// AskLine shows label followed by a "> " cue on its own line and returns the
// next line of r without surrounding blanks. Input that ends without a
// newline still counts as a line; io.EOF is returned only when nothing was
// typed.
func AskLine(r *bufio.Reader, w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n> ", label); err != nil {
		return "", err
	}

	line, err := r.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	default:
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskSecret shows "label: " and reads one line from stdin without echo.
func AskSecret(w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return "", err
	}
	b, err := readPassword(int(os.Stdin.Fd()))
	// echo is off, so the user's Enter never reached the screen
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return string(b), nil
}
