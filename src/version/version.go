// Package version holds the release version of velero-backup.
package version

// Version is overridden at build time with
// -ldflags "-X velero-backup/src/version.Version=...".
var Version = "0.1.0-dev"
