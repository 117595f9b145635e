// Package migrations holds the goose SQL migrations, embedded so the binary
// can bootstrap its own schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
