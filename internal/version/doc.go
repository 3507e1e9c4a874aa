// Package version exposes build metadata of the arm-toggle binaries.
//
// Version, Commit and BuildTime are injected at build time via Go ldflags.
// Short and Full render them for CLI output, logs and the User-Agent.
package version
