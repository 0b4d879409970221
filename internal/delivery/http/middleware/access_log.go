package middleware

import (
	"time"

	"developer-directory/internal/pkg/metrics"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccessLogMiddleware struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewAccessLogMiddleware(logger *zap.Logger, m *metrics.Metrics) *AccessLogMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccessLogMiddleware{logger: logger, metrics: m}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("X-Request-ID", rid)

		err := c.Next()

		dur := time.Since(start)
		status := c.Response().StatusCode()

		m.metrics.ObserveRequest(c.Method(), status, dur)
		m.logger.Info("http access",
			zap.String("rid", rid),
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", status),
			zap.Duration("latency", dur),
			zap.Int("req_bytes", c.Request().Header.ContentLength()),
			zap.Int("resp_bytes", len(c.Response().Body())),
			zap.String("ua", c.Get("User-Agent")),
		)

		return err
	}
}
