package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/elien2016/customers/internal/middleware"
	"github.com/elien2016/customers/internal/server"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

var errNotConfigured = errors.New("not configured")

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// healthCheck pings one dependency. Only required checks affect the
// overall status.
type healthCheck struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

func (h *HealthHandler) checks() []healthCheck {
	cfg := h.server.Config.Observability.HealthChecks

	var checks []healthCheck

	if cfg.ShouldCheck("database") {
		checks = append(checks, healthCheck{
			name:     "database",
			required: true,
			ping: func(ctx context.Context) error {
				if h.server.DB == nil {
					return errNotConfigured
				}
				return h.server.DB.Pool.Ping(ctx)
			},
		})
	}

	// Redis only backs the welcome email queue, so it is reported but
	// does not fail the check.
	if cfg.ShouldCheck("redis") {
		checks = append(checks, healthCheck{
			name: "redis",
			ping: func(ctx context.Context) error {
				if h.server.Redis == nil {
					return errNotConfigured
				}
				return h.server.Redis.Ping(ctx).Err()
			},
		})
	}

	return checks
}

// CheckHealth reports the service status and each dependency check.
//
// It returns 200 when every required check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	timeout := h.server.Config.Observability.HealthChecks.Timeout
	checks := map[string]any{}
	isHealthy := true

	for _, check := range h.checks() {
		result, err := runCheck(c.Request().Context(), check, timeout)
		checks[check.name] = result

		if err != nil {
			if check.required {
				isHealthy = false
			}
			h.recordFailure(&logger, check.name, err, result["response_time"])
			continue
		}

		logger.Debug().Str("check", check.name).Msg("health check passed")
	}

	response := map[string]any{
		"status":      StatusHealthy,
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !isHealthy {
		response["status"] = StatusUnhealthy

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func runCheck(parent context.Context, check healthCheck, timeout time.Duration) (map[string]any, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	started := time.Now()
	err := check.ping(ctx)

	result := map[string]any{
		"status":        StatusHealthy,
		"response_time": time.Since(started).String(),
	}
	if err != nil {
		result["status"] = StatusUnhealthy
		result["error"] = err.Error()
	}

	return result, err
}

func (h *HealthHandler) recordFailure(logger *zerolog.Logger, name string, err error, responseTime any) {
	logger.Error().
		Err(err).
		Str("check", name).
		Interface("response_time", responseTime).
		Msg("health check failed")

	if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
		h.server.LoggerService.GetApplication().RecordCustomEvent(
			"HealthCheckError",
			map[string]any{
				"check_type":    name,
				"operation":     "health_check",
				"error_type":    name + "_unhealthy",
				"error_message": err.Error(),
			},
		)
	}
}
