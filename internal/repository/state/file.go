package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/arm-toggle/internal/config"
	"github.com/oshokin/arm-toggle/internal/domain/arm"
)

// Repository defines persistence operations for the recorded arm state.
type Repository interface {
	Load(ctx context.Context) (*arm.State, error)
	Save(ctx context.Context, state *arm.State) error
}

// Field names of the JSON document.
const (
	fieldArmed      = "armed"
	fieldTimestamp  = "timestamp"
	fieldSource     = "source"
	fieldRemoteAddr = "remote_addr"
	fieldUserAgent  = "user_agent"
)

// FileRepository persists the recorded state to a JSON file on disk.
// The document is a protobuf Struct encoded with protojson.
type FileRepository struct {
	// path is the filesystem location of the JSON state file.
	path string
	// mu protects concurrent access to the state file.
	mu sync.Mutex
}

var (
	// ErrNotFound is returned when the state file does not exist yet.
	ErrNotFound = errors.New("state not found")
	// errStateRequired is returned when Save receives a nil state.
	errStateRequired = errors.New("state must be provided")
)

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the state from disk.
func (r *FileRepository) Load(_ context.Context) (*arm.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read state file: %w", err)
	}

	var doc structpb.Struct
	if err = protojson.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}

	return fromStruct(&doc)
}

// Save writes the state to disk.
func (r *FileRepository) Save(_ context.Context, state *arm.State) error {
	if state == nil {
		return errStateRequired
	}

	doc, err := toStruct(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	data, err := protojson.MarshalOptions{Multiline: true}.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// fromStruct converts the stored document into the domain State model.
func fromStruct(doc *structpb.Struct) (*arm.State, error) {
	fields := doc.GetFields()

	state := &arm.State{
		IsArmed: fields[fieldArmed].GetBoolValue(),
	}

	if raw := fields[fieldTimestamp].GetStringValue(); raw != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("decode timestamp: %w", err)
		}

		state.Timestamp = ts
	}

	if source := fields[fieldSource].GetStructValue(); source != nil {
		sourceFields := source.GetFields()
		state.Source = &arm.Source{
			RemoteAddr: sourceFields[fieldRemoteAddr].GetStringValue(),
			UserAgent:  sourceFields[fieldUserAgent].GetStringValue(),
		}
	}

	return state, nil
}

// toStruct converts the domain State model into a protobuf Struct.
func toStruct(state *arm.State) (*structpb.Struct, error) {
	values := map[string]any{
		fieldArmed: state.IsArmed,
	}

	if !state.Timestamp.IsZero() {
		values[fieldTimestamp] = state.Timestamp.UTC().Format(time.RFC3339Nano)
	}

	if state.Source != nil {
		values[fieldSource] = map[string]any{
			fieldRemoteAddr: state.Source.RemoteAddr,
			fieldUserAgent:  state.Source.UserAgent,
		}
	}

	return structpb.NewStruct(values)
}
