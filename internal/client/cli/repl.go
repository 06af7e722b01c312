package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/authdash/internal/client/nav"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	ToggleMode()
	Retry(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from r and dispatches them to a.
// It returns on EOF or when the user types "exit" or "quit".
//
// Commands
//
//	help           — show screens and commands
//	login          — sign in (Login screen)
//	register       — create an account (Login screen, register mode)
//	toggle         — switch the form between login and register
//	retry          — finish the profile of a just-created account
//	dashboard      — show the signed-in identity (Dashboard screen)
//	logout         — end the session
//	exit | quit    — leave the program
//
// Errors returned by handlers are not printed here; handlers print the
// user-facing message themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("auth %s> ", statusFn()))
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn(helpText())

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "toggle":
			a.ToggleMode()

		case "retry":
			_ = a.Retry(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func helpText() string {
	var b strings.Builder
	_ = nav.Render(&b)
	b.WriteString("Available commands: login, register, toggle, retry, dashboard, logout, exit")
	return b.String()
}
