// Package ui abstracts the host surface the arm toggle is bound to.
//
// A Document resolves controls by their stable identifier; a Control shows a
// text and runs its activation handlers once per discrete user action. Button
// and Page are the in-memory implementations driven by the terminal UI and by
// tests.
package ui
