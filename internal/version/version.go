// Package version records the build version stamped at link time.
package version

// Version is overridden via -ldflags "-X sem/internal/version.Version=...".
var Version = "0.3.0-dev"
