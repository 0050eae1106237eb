package app

import (
	"context"
	"net/http"
	"time"

	"github.com/Falasefemi2/hr-portal/internal/shared/apperror"
	"github.com/Falasefemi2/hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// HealthCheck probes one dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

func healthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		status := http.StatusOK
		result := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				result[name] = "down"
				continue
			}
			result[name] = "up"
		}

		if status != http.StatusOK {
			response.Error(c, status, apperror.CodeServiceUnavailable, "dependency unavailable", result)
			return
		}
		response.Success(c, status, result, nil)
	}
}
