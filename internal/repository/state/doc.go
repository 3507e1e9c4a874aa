// Package state implements persistence of the state recorded by the endpoint.
//
// FileRepository stores and loads the state as JSON on disk and exposes the
// Repository interface that the server service depends on. The endpoint keeps
// the last notification only; nothing here feeds back into the client.
package state
