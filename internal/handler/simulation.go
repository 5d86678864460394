package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dining-sim/internal/config"
	"github.com/iliyamo/dining-sim/internal/repository"
	"github.com/iliyamo/dining-sim/internal/service"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// SimulationHandler serves /v1/simulations. Request bodies are decoded over
// Defaults, so a client only sends the keys it wants to change.
type SimulationHandler struct {
	Sim      *service.Simulator
	Defaults config.SimulationConfig
}

func NewSimulationHandler(sim *service.Simulator, defaults config.SimulationConfig) *SimulationHandler {
	if sim == nil {
		panic("nil simulator passed to NewSimulationHandler")
	}
	return &SimulationHandler{Sim: sim, Defaults: defaults}
}

// Create handles POST /v1/simulations. It answers 201 with the new run, or
// 200 with X-Result-Cache: HIT when an identical run is cached. Pass
// ?timeline=false to drop the per-tick timeline from the response.
func (h *SimulationHandler) Create(c echo.Context) error {
	cfg := h.Defaults
	// Slices are replaced, not merged, when present in the body.
	cfg.Tables = append([]config.TableConfig(nil), h.Defaults.Tables...)
	cfg.DiningTimes = append([]config.RangeConfig(nil), h.Defaults.DiningTimes...)
	cfg.Schedule = nil
	if err := c.Bind(&cfg); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := cfg.Validate(); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()
	run, cached, err := h.Sim.Run(ctx, cfg)
	if err != nil {
		c.Logger().Errorf("simulation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "simulation failed"})
	}

	out := *run
	if c.QueryParam("timeline") == "false" {
		out.Timeline = nil
	}
	if cached {
		c.Response().Header().Set("X-Result-Cache", "HIT")
		return c.JSON(http.StatusOK, out)
	}
	c.Response().Header().Set("X-Result-Cache", "MISS")
	return c.JSON(http.StatusCreated, out)
}

// Get handles GET /v1/simulations/:id.
func (h *SimulationHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	run, err := h.Sim.Get(ctx, id)
	if errors.Is(err, repository.ErrRunNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "simulation not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, run)
}

// List handles GET /v1/simulations?limit=N, newest first.
func (h *SimulationHandler) List(c echo.Context) error {
	limit := defaultListLimit
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	runs, err := h.Sim.List(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": runs, "count": len(runs)})
}
