package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs completed HTTP requests. Prometheus scrapes and
// health probes are skipped to keep the log readable.
func RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			err := next(c)

			if req.URL.Path == "/metrics" || req.URL.Path == "/api/v1/health" {
				return err
			}

			latency := time.Since(start)
			log.Printf("[%s] %s %s - %d (%s)",
				req.Method,
				req.RequestURI,
				req.RemoteAddr,
				res.Status,
				latency,
			)

			return err
		}
	}
}
