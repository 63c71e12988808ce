// Package migrations embeds the goose migration files for every supported
// database dialect. The server applies the directory matching its configured
// driver at startup; tests reach into the embedded files directly.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Files embed.FS

// Dir returns the embedded migration directory for the given driver name.
func Dir(driver string) string {
	if driver == "postgres" {
		return "postgres"
	}
	return "sqlite"
}
