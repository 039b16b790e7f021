package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/wedding-rsvp/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// pingFunc checks one dependency.
type pingFunc func(ctx context.Context) error

// HealthHandler reports whether the database and redis are reachable.
type HealthHandler struct {
	env   string
	db    pingFunc
	redis pingFunc
	nrApp *newrelic.Application
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		env:   s.Config.Primary.Env,
		db:    s.DB.Pool.Ping,
		nrApp: s.LoggerService.GetApplication(),
	}
	if s.Redis != nil {
		h.redis = func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}
	}
	return h
}

type healthCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]healthCheck `json:"checks"`
}

// CheckHealth returns 200 when the database answers and 503 otherwise.
// Redis is reported but never makes the service unhealthy.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger, done := operation(c, "health_check")
	defer done()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.env,
		Checks:      map[string]healthCheck{},
	}

	dbCheck := h.check(c.Request().Context(), "database", h.db)
	response.Checks["database"] = dbCheck
	if dbCheck.Error != "" {
		logger.Error().Str("error", dbCheck.Error).Msg("database health check failed")
	}

	if h.redis != nil {
		redisCheck := h.check(c.Request().Context(), "redis", h.redis)
		response.Checks["redis"] = redisCheck
		if redisCheck.Error != "" {
			logger.Error().Str("error", redisCheck.Error).Msg("redis health check failed")
		}
	}

	if dbCheck.Error != "" {
		response.Status = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().Dur("total_duration", time.Since(start)).Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) check(parent context.Context, name string, ping pingFunc) healthCheck {
	ctx, cancel := context.WithTimeout(parent, 5*time.Second)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	if err == nil {
		return healthCheck{Status: "healthy", ResponseTime: elapsed.String()}
	}

	if h.nrApp != nil {
		h.nrApp.RecordCustomEvent("HealthCheckError", map[string]any{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}

	return healthCheck{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
}
