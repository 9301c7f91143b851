// Package version holds build-time identity of the binary.
package version

// Set via -ldflags at build time.
var (
	Name        = "posterserv"
	Description = "Bilingual AI poster generation service"
	Version     = "0.0.0-dev"
)
