// Package migrations embeds the schema of the local upload journal.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
