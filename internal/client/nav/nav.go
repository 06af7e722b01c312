// Package nav lists the screens of the application.
package nav

import (
	"fmt"
	"io"
)

type Link struct {
	Label string
	Path  string
}

const (
	PathLogin     = "/"
	PathDashboard = "/dashboard"
)

var Brand = Link{Label: "Auth App", Path: "/"}

// Links returns the navigation links in display order.
func Links() []Link {
	return []Link{
		{Label: "Login", Path: PathLogin},
		{Label: "Dashboard", Path: PathDashboard},
	}
}

// Render writes the navigation bar as one line of text.
func Render(w io.Writer) error {
	if _, err := fmt.Fprint(w, Brand.Label); err != nil {
		return err
	}
	for _, l := range Links() {
		if _, err := fmt.Fprintf(w, " | %s (%s)", l.Label, l.Path); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
