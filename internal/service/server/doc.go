// Package server runs the reference arm endpoint.
//
// It records `/set_armed` notifications, optionally persists and fans them
// out, and serves the recorded value over gRPC. Recording is all it does:
// no component here acts on the armed flag.
package server
