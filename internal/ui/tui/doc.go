// Package tui renders the arm/disarm control in the terminal with bubbletea.
//
// Key presses are translated into activations of the bound ui.Button; the
// bubbletea update loop provides the single UI goroutine the toggle expects.
package tui
