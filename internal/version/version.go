// Package version exposes the build version, set with
// -ldflags "-X github.com/ndewijer/Portfolio-Statement-Analyzer/internal/version.Version=x.y.z".
package version

// Version is the application version.
var Version = "dev"
