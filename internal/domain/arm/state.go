package arm

import "time"

// Source identifies where an arm notification came from.
type Source struct {
	// RemoteAddr is the network address of the notifying client.
	RemoteAddr string
	// UserAgent is the client software reported with the request.
	UserAgent string
}

// Clone returns a deep copy of the source.
func (s *Source) Clone() *Source {
	if s == nil {
		return nil
	}

	cloned := *s

	return &cloned
}

// State is the armed flag as recorded by the endpoint at a point in time.
type State struct {
	// Timestamp is when the state was last recorded.
	Timestamp time.Time
	// Source is the client that sent the last notification.
	Source *Source
	// IsArmed reports whether the subsystem is armed.
	IsArmed bool
}

// Clone returns a copy of the state to avoid leaking internal references.
func (s *State) Clone() *State {
	return &State{
		Timestamp: s.Timestamp,
		Source:    s.Source.Clone(),
		IsArmed:   s.IsArmed,
	}
}

// Label returns the control text matching the recorded state.
func (s *State) Label() string {
	return Label(s.IsArmed)
}
