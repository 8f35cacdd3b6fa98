// Package migrations embeds the goose migrations for the client's local storage.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
