// Package controller implements the arm toggle bound to a single UI control.
//
// The Controller owns the armed flag, keeps the control's label in step with
// it and hands every new value to a Dispatcher without waiting for delivery.
package controller
