// Package router registers the HTTP routes of the simulation API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dining-sim/internal/handler"
	"github.com/iliyamo/dining-sim/internal/middleware"
)

// RegisterRoutes registers the unauthenticated probes.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", handler.Metrics)
}

// RegisterAuth registers the token endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/token", a.Token)
}

// RegisterSimulations registers the simulation endpoints. Reads are public
// and stored runs never change, so single run lookups go through cache.
// Starting a run needs an operator token and is rate limited.
func RegisterSimulations(e *echo.Echo, s *handler.SimulationHandler, jwtSecret string, cache, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/simulations")
	g.GET("", s.List)
	g.GET("/:id", s.Get, cache)
	g.POST("", s.Create,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleOperator),
		limit,
	)
}
