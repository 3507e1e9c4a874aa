// Package common holds helpers shared by several services.
//
// It provides a lightweight gRPC client wrapper for the arm state query API
// with timeouts, and builds the User-Agent the toggle client reports.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
