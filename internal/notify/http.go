package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/oshokin/arm-toggle/internal/domain/arm"
)

// DefaultTimeout bounds a single notification request.
const DefaultTimeout = 5 * time.Second

var (
	// ErrDeliveryFailed covers transport errors, timeouts and non-2xx responses.
	ErrDeliveryFailed = errors.New("notification delivery failed")
	// errEndpointRequired is returned when no endpoint URL is configured.
	errEndpointRequired = errors.New("endpoint must be provided")
	// errEndpointScheme is returned for endpoints that are not http(s).
	errEndpointScheme = errors.New("endpoint scheme must be http or https")
)

// HTTPNotifier sends arm notifications over HTTP.
type HTTPNotifier struct {
	// endpoint is the base URL of the remote collaborator.
	endpoint *url.URL
	// client performs the requests.
	client *http.Client
	// timeout bounds each request; zero disables the bound.
	timeout time.Duration
	// userAgent is sent with each request when set.
	userAgent string
	// baseCtx is the parent context of dispatched requests.
	baseCtx context.Context //nolint:containedctx // Dispatch has no caller context to inherit.
	// inflight tracks dispatched requests for Wait.
	inflight sync.WaitGroup
}

// Option configures notifier behaviour.
type Option func(*HTTPNotifier)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(n *HTTPNotifier) {
		if timeout > 0 {
			n.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(n *HTTPNotifier) {
		if client != nil {
			n.client = client
		}
	}
}

// WithUserAgent sets the User-Agent header of notification requests.
func WithUserAgent(userAgent string) Option {
	return func(n *HTTPNotifier) {
		n.userAgent = userAgent
	}
}

// WithBaseContext sets the parent context of dispatched requests.
// Canceling it aborts requests still in flight.
func WithBaseContext(ctx context.Context) Option {
	return func(n *HTTPNotifier) {
		if ctx != nil {
			n.baseCtx = ctx
		}
	}
}

// NewHTTPNotifier creates a notifier for the endpoint base URL, e.g. "http://turret.local:8000".
func NewHTTPNotifier(endpoint string, opts ...Option) (*HTTPNotifier, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errEndpointRequired
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", errEndpointScheme, endpoint)
	}

	n := &HTTPNotifier{
		endpoint: u,
		client:   http.DefaultClient,
		timeout:  DefaultTimeout,
		baseCtx:  context.Background(),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n, nil
}

// RequestURL returns the notification URL for the given state.
func (n *HTTPNotifier) RequestURL(armed bool) string {
	u := *n.endpoint
	u.Path = strings.TrimSuffix(u.Path, "/") + arm.SetArmedPath
	u.RawPath = ""
	u.RawQuery = url.Values{arm.QueryParam: []string{arm.FormatArmed(armed)}}.Encode()
	u.Fragment = ""

	return u.String()
}

// Notify sends one notification and waits for the response status.
// The response body is discarded.
func (n *HTTPNotifier) Notify(ctx context.Context, armed bool) error {
	if n.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.RequestURL(armed), http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrDeliveryFailed, err)
	}

	// A reused keep-alive connection lets the transport replay an idempotent
	// GET after a dropped connection. One activation must stay one request.
	req.Close = true

	if n.userAgent != "" {
		req.Header.Set("User-Agent", n.userAgent)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: unexpected status %s", ErrDeliveryFailed, resp.Status)
	}

	return nil
}

// Dispatch starts a notification on its own goroutine and returns at once.
// The outcome is dropped: no retry, no log, no callback.
func (n *HTTPNotifier) Dispatch(armed bool) {
	n.inflight.Add(1)

	go func() {
		defer n.inflight.Done()

		_ = n.Notify(n.baseCtx, armed)
	}()
}

// Wait blocks until every dispatched notification has finished.
func (n *HTTPNotifier) Wait() {
	n.inflight.Wait()
}
