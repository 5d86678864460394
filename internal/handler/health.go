// Package handler holds the HTTP handlers of the simulation API.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dining-sim/internal/metrics"
)

// Health is the liveness probe. It always answers 200 "ok".
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Metrics serves the process metrics in the Prometheus text format.
func Metrics(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/plain; version=0.0.4")
	c.Response().WriteHeader(http.StatusOK)
	metrics.WritePrometheus(c.Response())
	return nil
}
