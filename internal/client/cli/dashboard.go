package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authdash/internal/client/dashboard"
)

// Dashboard loads and prints the signed-in identity.
func (a *App) Dashboard(ctx context.Context) error {
	a.dashboard.Mount(ctx)
	if err := dashboard.Render(a.out, a.dashboard.Snapshot()); err != nil {
		return err
	}
	a.dashboard.Wait()
	return dashboard.Render(a.out, a.dashboard.Snapshot())
}

// Logout ends the provider session and clears the form.
func (a *App) Logout(ctx context.Context) error {
	if err := a.dashboard.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Logout failed. Please try again.")
		return err
	}
	a.form.Reset()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
