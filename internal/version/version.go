// Package version holds the build version, overridable via
// -ldflags "-X protgroup/internal/version.Version=...".
package version

// Version is the release version reported by --version.
var Version = "0.1.0"
