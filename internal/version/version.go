// Package version provides build metadata for the genex CLI.
//
// Overview:
//   - Responsibility: CLI version metadata (version, commit, build time)
//   - Key Types: Version variables and formatting functions
//   - Concurrency Model: Set at link time, read-only afterwards
//   - Error Semantics: No errors
//   - Performance Notes: Zero-cost variables
//
// Usage:
//
//	go build -ldflags "-X go.eggybyte.com/genex/internal/version.Version=v0.2.0" ./cmd/genex
//	fmt.Println(version.GetVersionString())
package version

import (
	"fmt"
	"runtime"
)

// Version is the CLI version, overridden with -ldflags at release time.
var Version = "v0.1.0-dev"

// Commit is the git commit hash.
var Commit = "unknown"

// BuildTime is the build timestamp in RFC3339 format.
var BuildTime = "unknown"

// GetVersionString returns the one-line version string:
// genex version v0.1.0 (commit 4a9b2c1, built 2026-01-10T12:10:00Z)
func GetVersionString() string {
	return fmt.Sprintf("genex version %s (commit %s, built %s)", Version, Commit, BuildTime)
}

// GetFullVersionInfo returns the version string followed by the Go toolchain
// and platform.
func GetFullVersionInfo() string {
	return fmt.Sprintf("%s\ngo version %s (%s/%s)",
		GetVersionString(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
