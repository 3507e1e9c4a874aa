// Package client runs the arm toggle for an operator.
//
// It binds the toggle controller to the arm/disarm button, wires the HTTP
// notifier, and either drives the button from the terminal UI or presses it
// a fixed number of times for scripted use.
package client
