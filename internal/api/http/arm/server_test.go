package arm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/arm-toggle/internal/domain/arm"
)

var errTestRecord = errors.New("test record error")

// call captures a single SetArmed invocation.
type call struct {
	source *domain.Source
	armed  bool
}

// fakeService implements Service for unit testing the transport.
type fakeService struct {
	// mu protects calls.
	mu sync.Mutex
	// calls holds every SetArmed invocation.
	calls []call
	// err is returned from SetArmed when set.
	err error
}

// SetArmed records the invocation and returns a state built from it.
func (f *fakeService) SetArmed(_ context.Context, source *domain.Source, armed bool) (*domain.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, call{source: source, armed: armed})

	if f.err != nil {
		return nil, f.err
	}

	return &domain.State{Timestamp: time.Now(), Source: source, IsArmed: armed}, nil
}

// serve runs one GET request against a fresh echo instance.
func serve(t *testing.T, svc Service, target string) *httptest.ResponseRecorder {
	t.Helper()

	e := NewEcho(context.Background(), NewHandler(svc))

	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	req.Header.Set("User-Agent", "arm-toggle-test")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

// TestHandler_Root redirects to the operator page.
func TestHandler_Root(t *testing.T) {
	t.Parallel()

	rec := serve(t, new(fakeService), "/")
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	require.Equal(t, IndexPath, rec.Header().Get("Location"))
}

// TestHandler_StaticAssets serves the page with the control and the toggle script.
func TestHandler_StaticAssets(t *testing.T) {
	t.Parallel()

	rec := serve(t, new(fakeService), IndexPath)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), `<button id="armDisarmButton">Arm</button>`)

	rec = serve(t, new(fakeService), ScriptPath)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/set_armed?armed=")
}

// TestHandler_SetArmed records parsed values with the caller's source.
func TestHandler_SetArmed(t *testing.T) {
	t.Parallel()

	svc := new(fakeService)

	for _, target := range []string{
		"/set_armed?armed=true",
		"/set_armed?armed=FALSE",
		"/set_armed?armed=True",
		"/set_armed",
		"/set_armed?armed=garbage",
		"/set_armed?armed=%20true%20",
	} {
		rec := serve(t, svc, target)
		require.Equal(t, http.StatusOK, rec.Code, target)
		require.Empty(t, rec.Body.String(), target)
	}

	require.Len(t, svc.calls, 6)

	got := make([]bool, 0, len(svc.calls))
	for _, c := range svc.calls {
		got = append(got, c.armed)
		require.Equal(t, "arm-toggle-test", c.source.UserAgent)
		require.NotEmpty(t, c.source.RemoteAddr)
	}

	require.Equal(t, []bool{true, false, true, false, false, false}, got)
}

// TestHandler_SetArmedFailure maps service errors to 500.
func TestHandler_SetArmedFailure(t *testing.T) {
	t.Parallel()

	rec := serve(t, &fakeService{err: errTestRecord}, "/set_armed?armed=true")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

// TestHandler_UnknownPath answers 404.
func TestHandler_UnknownPath(t *testing.T) {
	t.Parallel()

	rec := serve(t, new(fakeService), "/stream.mjpg")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
