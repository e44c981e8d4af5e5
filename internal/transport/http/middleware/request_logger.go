// Package middleware contains HTTP middlewares for delivery.
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs HTTP requests with method, route, status and duration.
// Server errors are logged at error level and client errors at warn.
// Paths in skip are not logged.
func RequestLogger(log *zap.SugaredLogger, skip ...string) fiber.Handler {
	log = log.Named("http.access")
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, ok := skipped[c.Path()]; ok {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		dur := time.Since(start)

		reqID, _ := c.Locals("requestid").(string)
		if reqID == "" {
			reqID = c.Get(fiber.HeaderXRequestID)
		}
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		// query strings carry invitation tokens
		kv := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"route", c.Route().Path,
			"status", status,
			"duration_ms", float64(dur.Microseconds()) / 1000.0,
			"request_id", reqID,
		}
		switch {
		case err != nil || status >= fiber.StatusInternalServerError:
			if err != nil {
				kv = append(kv, "error", err.Error())
			}
			log.Errorw("http", kv...)
		case status >= fiber.StatusBadRequest:
			log.Warnw("http", kv...)
		default:
			log.Infow("http", kv...)
		}
		return err
	}
}
