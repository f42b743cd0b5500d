// Package migrations embeds the schema files applied at startup, so the
// binary carries its schema regardless of working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
