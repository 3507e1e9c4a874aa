package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/arm-toggle/internal/domain/arm"
)

// TestFileRepository_NotFound verifies Load returns ErrNotFound for missing file.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()
	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.json"))
	s, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, s)
}

// TestFileRepository_SaveLoad_Roundtrip ensures Save followed by Load returns equal state.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "state.json")
	repo := NewFileRepository(file)

	want := &arm.State{
		Timestamp: time.Now().UTC(),
		Source: &arm.Source{
			RemoteAddr: "192.168.1.20:51234",
			UserAgent:  "arm-toggle/1.0.0",
		},
		IsArmed: true,
	}

	require.NoError(t, repo.Save(context.Background(), want))
	require.Error(t, repo.Save(context.Background(), nil))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want.IsArmed, got.IsArmed)
	require.True(t, want.Timestamp.Equal(got.Timestamp))
	require.Equal(t, want.Source, got.Source)

	_, err = os.Stat(file)
	require.NoError(t, err)
}

// TestFileRepository_MinimalDocument loads a state without timestamp and source.
func TestFileRepository_MinimalDocument(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"armed": false}`), 0o600))

	got, err := NewFileRepository(file).Load(context.Background())
	require.NoError(t, err)
	require.False(t, got.IsArmed)
	require.True(t, got.Timestamp.IsZero())
	require.Nil(t, got.Source)
}

// TestFileRepository_Corrupted verifies decode errors are reported.
func TestFileRepository_Corrupted(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"armed": `), 0o600))

	_, err := NewFileRepository(file).Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}
