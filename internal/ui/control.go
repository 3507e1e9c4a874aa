package ui

import "sync"

// Control is a single activatable element with a displayed text.
type Control interface {
	// ID returns the stable identifier of the control.
	ID() string
	// Text returns the currently displayed text.
	Text() string
	// SetText replaces the displayed text.
	SetText(text string)
	// OnActivate registers a handler run on each activation.
	OnActivate(handler func())
}

// Document resolves controls by identifier.
type Document interface {
	ControlByID(id string) (Control, bool)
}

// Button is an in-memory Control. Activate runs the registered handlers
// synchronously on the caller's goroutine, in registration order.
type Button struct {
	// id is the stable identifier of the button.
	id string

	// mu protects text and handlers.
	mu sync.Mutex
	// text is the displayed label.
	text string
	// handlers run on each activation.
	handlers []func()
}

// NewButton creates a button with the given identifier and initial text.
func NewButton(id, text string) *Button {
	return &Button{
		id:   id,
		text: text,
	}
}

// ID returns the stable identifier of the button.
func (b *Button) ID() string {
	return b.id
}

// Text returns the displayed text.
func (b *Button) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.text
}

// SetText replaces the displayed text.
func (b *Button) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text = text
}

// OnActivate registers a handler run on each activation.
func (b *Button) OnActivate(handler func()) {
	if handler == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers = append(b.handlers, handler)
}

// Activate simulates one discrete user action on the button.
func (b *Button) Activate() {
	// Copy under lock: handlers call back into SetText.
	b.mu.Lock()
	handlers := make([]func(), len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.Unlock()

	for _, handler := range handlers {
		handler()
	}
}

// Page is a Document holding buttons keyed by identifier.
type Page struct {
	// buttons maps identifiers to controls.
	buttons map[string]*Button
}

// NewPage creates a page from the provided buttons.
// A later button replaces an earlier one with the same identifier.
func NewPage(buttons ...*Button) *Page {
	p := &Page{
		buttons: make(map[string]*Button, len(buttons)),
	}

	for _, b := range buttons {
		p.buttons[b.ID()] = b
	}

	return p
}

// ControlByID returns the control with the given identifier.
//
//nolint:ireturn // Document is satisfied by returning the interface.
func (p *Page) ControlByID(id string) (Control, bool) {
	b, ok := p.Button(id)
	if !ok {
		return nil, false
	}

	return b, true
}

// Button returns the concrete button with the given identifier.
func (p *Page) Button(id string) (*Button, bool) {
	b, ok := p.buttons[id]

	return b, ok
}
