package controller

import (
	"errors"
	"fmt"
	"sync"

	"github.com/oshokin/arm-toggle/internal/domain/arm"
	"github.com/oshokin/arm-toggle/internal/ui"
)

// Dispatcher starts delivery of the new armed state and returns immediately.
// Delivery outcome is never reported back.
type Dispatcher interface {
	Dispatch(armed bool)
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(armed bool)

// Dispatch calls f(armed).
func (f DispatcherFunc) Dispatch(armed bool) {
	f(armed)
}

// Controller toggles the armed state of the control it is bound to.
type Controller struct {
	// control is the bound UI element showing the label.
	control ui.Control
	// dispatcher receives every new state.
	dispatcher Dispatcher

	// mu makes the flip and the label update a single step.
	mu sync.Mutex
	// isArmed is the client-held state, false until the first toggle.
	isArmed bool
	// bound guards against registering Toggle twice on the control.
	bound bool
}

var (
	// ErrControlNotFound is returned when the document lacks the requested control.
	ErrControlNotFound = errors.New("control not found")
	// errDispatcherRequired is returned when no dispatcher is provided.
	errDispatcherRequired = errors.New("dispatcher must be provided")
)

// New binds a controller to the control with the given identifier.
// The control shows the disarmed label once New returns.
func New(doc ui.Document, controlID string, dispatcher Dispatcher) (*Controller, error) {
	if dispatcher == nil {
		return nil, errDispatcherRequired
	}

	if doc == nil {
		return nil, fmt.Errorf("%w: %q", ErrControlNotFound, controlID)
	}

	control, ok := doc.ControlByID(controlID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrControlNotFound, controlID)
	}

	c := &Controller{
		control:    control,
		dispatcher: dispatcher,
	}

	control.SetText(arm.Label(false))
	c.Bind()

	return c, nil
}

// Bind registers Toggle as the control's activation handler.
// Calling it again is a no-op.
func (c *Controller) Bind() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bound {
		return
	}

	c.control.OnActivate(c.Toggle)
	c.bound = true
}

// Toggle flips the armed state, relabels the control and dispatches the
// new state. It does not wait for the dispatch to be delivered.
func (c *Controller) Toggle() {
	c.mu.Lock()
	c.isArmed = !c.isArmed
	armed := c.isArmed
	c.control.SetText(arm.Label(armed))
	c.mu.Unlock()

	c.dispatcher.Dispatch(armed)
}

// IsArmed reports the current client-held state.
func (c *Controller) IsArmed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.isArmed
}

// Label returns the text matching the current state.
func (c *Controller) Label() string {
	return arm.Label(c.IsArmed())
}
