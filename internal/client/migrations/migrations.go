// Package migrations embeds the goose schema migrations for the local
// session cache (SQLite) and the profile store (Postgres).
package migrations

import "embed"

//go:embed sqlite/*.sql
var SQLite embed.FS

//go:embed postgres/*.sql
var Postgres embed.FS
