package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger logs every request once it has been handled. Client errors log
// at warn and server or upstream errors at error.
func NewLogger() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		startTime := time.Now()
		err = c.Next()

		msg := "HTTP Request"
		if err != nil {
			msg = err.Error()
		}

		code := c.Response().StatusCode()

		requestLogger := log.With().
			Int("status", code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("query", string(c.Request().URI().QueryString())).
			Str("ip", c.IP()).
			Dur("latency", time.Since(startTime)).
			Str("user-agent", c.Get(fiber.HeaderUserAgent)).
			Logger()

		level := zerolog.InfoLevel
		switch {
		case code >= fiber.StatusInternalServerError:
			level = zerolog.ErrorLevel
		case code >= fiber.StatusBadRequest:
			level = zerolog.WarnLevel
		}
		requestLogger.WithLevel(level).Msg(msg)

		return err
	}
}
