package arm

import (
	"context"
	"embed"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	domain "github.com/oshokin/arm-toggle/internal/domain/arm"
	"github.com/oshokin/arm-toggle/internal/logger"
)

const (
	// IndexPath serves the operator page.
	IndexPath = "/index.html"
	// ScriptPath serves the browser toggle script.
	ScriptPath = "/script.js"
)

//go:embed static/index.html static/script.js
var static embed.FS

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	SetArmed(ctx context.Context, source *domain.Source, armed bool) (*domain.State, error)
}

// Handler serves the endpoint routes.
type Handler struct {
	// service records the notifications.
	service Service
}

// NewHandler wires the provided service implementation into HTTP handlers.
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// NewEcho builds an echo instance with the handler's routes and middleware.
// ctx carries the logger used for access logs.
func NewEcho(ctx context.Context, h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(withLogger(ctx))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.DebugKV(
				ctx,
				"HTTP request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.Round(time.Microsecond).String(),
				"remote_ip", v.RemoteIP,
			)

			return nil
		},
	}))

	h.Register(e)

	return e
}

// Register attaches the endpoint routes. Unknown paths fall through to
// echo's 404 handler.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET(IndexPath, h.Index)
	e.GET(ScriptPath, h.Script)
	e.GET(domain.SetArmedPath, h.SetArmed)
}

// Root redirects to the operator page.
func (h *Handler) Root(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, IndexPath)
}

// Index serves the operator page.
func (h *Handler) Index(c echo.Context) error {
	return serveStatic(c, "static/index.html", echo.MIMETextHTMLCharsetUTF8)
}

// Script serves the browser toggle script.
func (h *Handler) Script(c echo.Context) error {
	return serveStatic(c, "static/script.js", echo.MIMEApplicationJavaScriptCharsetUTF8)
}

// SetArmed records the armed query value. A missing or unrecognised value
// records disarmed. The answer is an empty 200; clients ignore it anyway.
func (h *Handler) SetArmed(c echo.Context) error {
	var (
		request = c.Request()
		armed   = domain.ParseArmed(c.QueryParam(domain.QueryParam))
		source  = &domain.Source{
			RemoteAddr: request.RemoteAddr,
			UserAgent:  request.UserAgent(),
		}
	)

	if _, err := h.service.SetArmed(request.Context(), source, armed); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "unable to record state").SetInternal(err)
	}

	return c.NoContent(http.StatusOK)
}

// withLogger makes the server's logger available to handlers through the request context.
func withLogger(ctx context.Context) echo.MiddlewareFunc {
	l := logger.FromContext(ctx)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			request := c.Request()
			c.SetRequest(request.WithContext(logger.ToContext(request.Context(), l)))

			return next(c)
		}
	}
}

// serveStatic writes an embedded file with the given content type.
func serveStatic(c echo.Context, name, contentType string) error {
	data, err := static.ReadFile(name)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
	}

	return c.Blob(http.StatusOK, contentType, data)
}
