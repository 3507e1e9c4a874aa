// Package arm contains the core domain types of the arm toggle.
//
// It maps the armed flag to the label shown on the control, parses the wire
// value of the armed query parameter, and defines State (the value the
// endpoint recorded last) with Clone helpers to avoid leaking internal
// references.
package arm
