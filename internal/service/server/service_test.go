package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/arm-toggle/internal/domain/arm"
	repo "github.com/oshokin/arm-toggle/internal/repository/state"
)

var (
	errTestLoad    = errors.New("test load error")
	errTestSave    = errors.New("test save error")
	errTestPublish = errors.New("test publish error")
)

// memoryRepository is a minimal in-memory Repository implementation for tests.
type memoryRepository struct {
	// state is the state to return from Load operations.
	state *arm.State
	// loadErr is the error to return from Load operations.
	loadErr error
	// saveErr is the error to return from Save operations.
	saveErr error
	// saved stores the last state passed to Save operations.
	saved *arm.State
}

// Load returns the configured state and error.
func (m *memoryRepository) Load(context.Context) (*arm.State, error) {
	return m.state, m.loadErr
}

// Save stores the provided state unless saveErr is set.
func (m *memoryRepository) Save(_ context.Context, s *arm.State) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	m.saved = s

	return nil
}

// recordingPublisher collects published states.
type recordingPublisher struct {
	// published holds every state passed to PublishArmState.
	published []*arm.State
	// err is returned from PublishArmState.
	err error
}

// PublishArmState records the state and returns the configured error.
func (p *recordingPublisher) PublishArmState(_ context.Context, s *arm.State) error {
	p.published = append(p.published, s)

	return p.err
}

// TestNewService_LoadsStateOrDefaults asserts newService behavior on existing, missing, and error states.
func TestNewService_LoadsStateOrDefaults(t *testing.T) {
	t.Parallel()

	// Existing state.
	old := &arm.State{
		Timestamp: time.Unix(100, 0),
		Source: &arm.Source{
			RemoteAddr: "10.0.0.5:40000",
			UserAgent:  "curl/8.5.0",
		},
		IsArmed: true,
	}

	s, err := newService(context.Background(), &memoryRepository{state: old}, nil)

	require.NoError(t, err)
	require.Equal(t, old.IsArmed, s.state.IsArmed)
	require.Equal(t, old.Source, s.state.Source)

	// Not found -> default.
	s, err = newService(context.Background(), &memoryRepository{loadErr: repo.ErrNotFound}, nil)

	require.NoError(t, err)
	require.False(t, s.state.IsArmed)

	// Other error.
	s, err = newService(context.Background(), &memoryRepository{loadErr: errTestLoad}, nil)

	require.Error(t, err)
	require.Nil(t, s)

	// No repository.
	s, err = newService(context.Background(), nil, nil)

	require.NoError(t, err)
	require.False(t, s.GetArmState(context.Background()).IsArmed)
}

// TestService_SetAndGet verifies SetArmed persists and publishes, and GetArmState returns the latest state.
func TestService_SetAndGet(t *testing.T) {
	t.Parallel()

	memory := new(memoryRepository)
	publisher := new(recordingPublisher)

	s, err := newService(context.Background(), memory, publisher)
	require.NoError(t, err)

	source := &arm.Source{
		RemoteAddr: "10.0.0.5:40000",
		UserAgent:  "arm-toggle/1.0.0",
	}

	result, err := s.SetArmed(context.Background(), source, true)

	require.NoError(t, err)
	require.True(t, result.IsArmed)
	require.NotNil(t, result.Source)

	// Cloned.
	require.NotSame(t, source, result.Source)
	require.NotNil(t, memory.saved)
	require.Len(t, publisher.published, 1)
	require.True(t, publisher.published[0].IsArmed)

	currentState := s.GetArmState(context.Background())
	require.True(t, currentState.IsArmed)

	_, err = s.SetArmed(context.Background(), nil, false)
	require.NoError(t, err)
	require.False(t, s.GetArmState(context.Background()).IsArmed)
	require.Nil(t, s.GetArmState(context.Background()).Source)
}

// TestService_SaveFailureKeepsPreviousState ensures a failed save neither records nor publishes.
func TestService_SaveFailureKeepsPreviousState(t *testing.T) {
	t.Parallel()

	publisher := new(recordingPublisher)

	s, err := newService(context.Background(), &memoryRepository{saveErr: errTestSave}, publisher)
	require.NoError(t, err)

	_, err = s.SetArmed(context.Background(), nil, true)
	require.ErrorIs(t, err, errTestSave)
	require.False(t, s.GetArmState(context.Background()).IsArmed)
	require.Empty(t, publisher.published)
}

// TestService_PublishFailureStillRecords ensures fan-out errors do not fail the record.
func TestService_PublishFailureStillRecords(t *testing.T) {
	t.Parallel()

	s, err := newService(context.Background(), nil, &recordingPublisher{err: errTestPublish})
	require.NoError(t, err)

	state, err := s.SetArmed(context.Background(), nil, true)
	require.NoError(t, err)
	require.True(t, state.IsArmed)
	require.True(t, s.GetArmState(context.Background()).IsArmed)
}
