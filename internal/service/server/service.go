package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/arm-toggle/internal/domain/arm"
	"github.com/oshokin/arm-toggle/internal/logger"
	repo "github.com/oshokin/arm-toggle/internal/repository/state"
)

// Publisher fans a recorded state out to other consumers.
type Publisher interface {
	PublishArmState(ctx context.Context, state *arm.State) error
}

// service records arm notifications and serves the last recorded value.
// It only records: nothing here acts on the armed flag.
type service struct {
	// repo persists the recorded state; nil keeps it in memory.
	repo repo.Repository
	// publisher fans out recorded states; nil disables fan-out.
	publisher Publisher
	// state is the last recorded state.
	state *arm.State
	// mu protects concurrent access to the state.
	mu sync.RWMutex
}

// newService creates a service, restoring the state from the repository if present.
func newService(ctx context.Context, repository repo.Repository, publisher Publisher) (*service, error) {
	s := &service{
		repo:      repository,
		publisher: publisher,
		state: &arm.State{
			Timestamp: time.Now(),
			IsArmed:   false,
		},
	}

	if repository == nil {
		return s, nil
	}

	state, err := repository.Load(ctx)
	switch {
	case err == nil:
		if state != nil {
			s.state = state
		}
	case errors.Is(err, repo.ErrNotFound):
		// Keep default state.
	default:
		return nil, fmt.Errorf("load state: %w", err)
	}

	return s, nil
}

// SetArmed records the armed flag sent by source.
func (s *service) SetArmed(ctx context.Context, source *arm.Source, armed bool) (*arm.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := &arm.State{
		Timestamp: time.Now(),
		Source:    source.Clone(),
		IsArmed:   armed,
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, next); err != nil {
			logger.ErrorKV(ctx, "Failed to persist arm state", "error", err)

			return nil, fmt.Errorf("persist state: %w", err)
		}
	}

	s.state = next

	logger.InfoKV(ctx, "Arm state recorded", "is_armed", next.IsArmed, "source", next.Source)

	if s.publisher != nil {
		// Fan-out is best effort; the record stands either way.
		if err := s.publisher.PublishArmState(ctx, next.Clone()); err != nil {
			logger.WarnKV(ctx, "Failed to publish arm state", "error", err)
		}
	}

	return next.Clone(), nil
}

// GetArmState returns the last recorded state.
func (s *service) GetArmState(ctx context.Context) *arm.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logger.DebugKV(ctx, "Arm state requested", "is_armed", s.state.IsArmed)

	return s.state.Clone()
}
