// Package version holds the build's version string.
package version

// AppVersion is overridden at release time via
// -ldflags "-X termctl/internal/version.AppVersion=...".
var AppVersion = "0.1.0"
