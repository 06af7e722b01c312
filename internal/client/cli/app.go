package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/authdash/internal/client/authform"
	"github.com/dmitrijs2005/authdash/internal/client/dashboard"
	"github.com/dmitrijs2005/authdash/internal/client/services"
	"github.com/dmitrijs2005/authdash/internal/logging"
)

type App struct {
	form      *authform.Controller
	dashboard *dashboard.Model
	logger    logging.Logger
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(svc *services.Services, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return newApp(svc.Form, svc.Dashboard, logger, in, out)
}

func newApp(form *authform.Controller, dash *dashboard.Model, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		form:      form,
		dashboard: dash,
		logger:    logger.With("module", "cli"),
		reader:    bufio.NewReader(in),
		out:       out,
	}
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Auth App (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) status() string {
	st := a.form.Snapshot()
	s := st.Mode.String()
	if st.Identity != nil {
		s = st.Identity.Email + " " + s
	}
	if st.Phase == authform.PhaseProfilePending {
		s += " profile pending"
	}
	return fmt.Sprintf("(%s)", s)
}
