package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"ordering/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// MetricsMiddleware records latency and count per route template.
func MetricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			status := ctx.Response().Status
			if err != nil {
				var he *echo.HTTPError
				switch {
				case errors.As(err, &he):
					status = he.Code
				default:
					status = statusOf(err)
				}
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			code := strconv.Itoa(status)
			m.HTTPRequestDuration.WithLabelValues(ctx.Request().Method, route, code).Observe(time.Since(start).Seconds())
			m.HTTPRequestTotal.WithLabelValues(ctx.Request().Method, route, code).Inc()
			return err
		}
	}
}

// RequestLogger logs one line per request through slog.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"route", v.RoutePath,
				"status", v.Status,
				"latency", v.Latency.String(),
			}
			if v.Error != nil {
				logger.WarnContext(ctx.Request().Context(), "HTTP request", append(attrs, "error", v.Error.Error())...)
				return nil
			}
			logger.InfoContext(ctx.Request().Context(), "HTTP request", attrs...)
			return nil
		},
	})
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// VisitorLimiterStore keeps one token bucket per client IP. Idle visitors are
// dropped by Cleanup.
type VisitorLimiterStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

func NewVisitorLimiterStore(rps float64, burst int) *VisitorLimiterStore {
	if burst < 1 {
		burst = int(rps) * 2
	}
	if burst < 1 {
		burst = 1
	}
	return &VisitorLimiterStore{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
		idleTTL:  3 * time.Minute,
		now:      time.Now,
	}
}

// Allow implements middleware.RateLimiterStore.
func (s *VisitorLimiterStore) Allow(identifier string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	v, ok := s.visitors[identifier]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[identifier] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1), nil
}

// Cleanup forgets visitors idle for longer than the TTL.
func (s *VisitorLimiterStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, v := range s.visitors {
		if now.Sub(v.lastSeen) > s.idleTTL {
			delete(s.visitors, key)
		}
	}
}

func (s *VisitorLimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

// RateLimiter rejects requests over the per-IP budget with 429.
func RateLimiter(store middleware.RateLimiterStore, rps float64, m *metrics.Metrics, logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: infraSkipper,
		Store:   store,
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		DenyHandler: func(ctx echo.Context, identifier string, _ error) error {
			m.RateLimitExceededTotal.WithLabelValues(ctx.Request().Method, ctx.Path()).Inc()
			logger.WarnContext(ctx.Request().Context(), "Rate limit exceeded",
				"method", ctx.Request().Method,
				"path", ctx.Request().URL.Path,
				"remote_addr", identifier,
			)
			ctx.Response().Header().Set("X-RateLimit-Limit", strconv.FormatFloat(rps, 'f', -1, 64))
			ctx.Response().Header().Set("Retry-After", "1")
			return echo.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded. Try again later.")
		},
		ErrorHandler: func(ctx echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "Unable to identify client")
		},
	})
}

// OpenAPIValidator checks path, query and body of /api requests against doc.
// Requests for paths the document does not know fall through to echo's router.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}
	options := &openapi3filter.Options{
		MultiError:         false,
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if infraSkipper(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				if errors.Is(findErr, routers.ErrPathNotFound) || errors.Is(findErr, routers.ErrMethodNotAllowed) {
					return next(ctx)
				}
				return echo.NewHTTPError(http.StatusBadRequest, findErr.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
			}
			return next(ctx)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		return strings.TrimSpace(reqErr.Error())
	}
	return err.Error()
}

func infraSkipper(ctx echo.Context) bool {
	return !strings.HasPrefix(ctx.Request().URL.Path, "/api/")
}
