// Package cli provides the interactive authdash command-line client.
//
// It drives the same credential form and dashboard as the web UI from a
// read–eval–print loop: login and register prompt for the form fields (the
// password without echo), dashboard shows the signed-in identity, logout
// ends the provider session.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command list.
package cli
