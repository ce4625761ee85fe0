// Package migrations embeds the SQL migrations for the postgres ledger backend.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
