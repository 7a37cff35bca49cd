// AngelaMos | 2026
// migrations.go

// Package migrations embeds the goose SQL migrations.
package migrations

import (
	"embed"
)

//go:embed *.sql
var Migrations embed.FS
