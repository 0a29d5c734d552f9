package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/fxpulse/internal/domain/dto"
	"github.com/guttosm/fxpulse/internal/logger"
)

// RequestLogger is a Gin middleware that logs one structured line per request.
//
// Behavior:
//   - Logs method, path, query, status, latency in ms and request_id (if injected by RequestID()).
//   - 5xx responses log at error level, 4xx at warn, everything else at info.
//   - Errors attached through c.Error are included as "errors".
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	request_id=123e4567-e89b-12d3-a456-426614174000 method=GET path=/api/v1/trend query="frequency=Monthly&year=2022&currency=EUR" status=200 latency_ms=15
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		ev := logger.L().Info()
		switch {
		case status >= http.StatusInternalServerError:
			ev = logger.L().Error()
		case status >= http.StatusBadRequest:
			ev = logger.L().Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Str("query", query).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// client represents a rate-limited client with request count and last seen timestamp.
type client struct {
	lastSeen time.Time
	count    int
}

// In-memory store for rate limiting, shared by every router in the process.
var (
	clients         = make(map[string]*client)
	window          = time.Minute
	limit           = 60
	rateLimiterLock sync.Mutex
)

// RateLimiter limits the number of requests per client IP.
//
// Behavior:
//   - Allows up to `limit` requests per `window` (default: 60 requests per 1 minute).
//   - Basket and current-rate calls hit the live feed, so the limit also caps upstream traffic.
//   - If limit exceeded, returns HTTP 429 with a Retry-After header and an ErrorResponse body.
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rateLimiterLock.Lock()
		cl, ok := clients[ip]
		if !ok || now.Sub(cl.lastSeen) > window {
			cl = &client{lastSeen: now, count: 1}
			clients[ip] = cl
		} else {
			cl.count++
			cl.lastSeen = now
		}
		exceeded := cl.count > limit
		rateLimiterLock.Unlock()

		if exceeded {
			secs := int(window.Seconds())
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}

		c.Next()
	}
}
