package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/ledger-api/pkg/logger"
)

// RequestObserver recibe la latencia de cada petición (lo implementa *metrics.LedgerMetrics).
type RequestObserver interface {
	ObserveHTTPRequest(method, route, status string, seconds float64)
}

// UseRequestMiddleware registra RequestLogger por fuera de recover: una petición
// que termina en panic también queda en el log y en las métricas, con estado 500.
func UseRequestMiddleware(app *fiber.App, log *logger.Logger, observer RequestObserver) {
	app.Use(RequestLogger(log, observer))
	app.Use(recover.New())
}

// RequestLogger registra método, ruta, estado, latencia e IP de cada petición.
// 5xx se registran como error y 4xx como warn.
func RequestLogger(log *logger.Logger, observer RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		if observer != nil {
			observer.ObserveHTTPRequest(c.Method(), c.Route().Path, strconv.Itoa(status), latency.Seconds())
		}

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.IP()).
			Msg("petición HTTP")
		return err
	}
}
