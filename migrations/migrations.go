// Package migrations embeds the goose migration set so the binary can
// migrate itself on startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
