package middleware

import (
	"github.com/Falasefemi2/hr-portal/internal/access"
	"github.com/Falasefemi2/hr-portal/internal/shared/apperror"
	"github.com/Falasefemi2/hr-portal/internal/shared/contextutil"
	"github.com/Falasefemi2/hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize guards a route with the gate decision for op. Services that need
// the caller beyond the role check still run the gate themselves.
func Authorize(gate access.Gate, op access.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := contextutil.GetPrincipal(c.Request.Context())

		if err := gate.Check(p, op); err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Abort(c, httpErr.Status, httpErr.Code, httpErr.Message)
			return
		}
		c.Next()
	}
}
