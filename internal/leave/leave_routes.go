package leave

import (
	"github.com/Falasefemi2/hr-portal/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RegisterRoutes mounts the leave request endpoints. Role checks run inside
// the service so the gate sees the resolved principal of every call.
func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rdb *redis.Client,
	writeRate rate.Limit,
	writeBurst int,
) {
	leaves := r.Group("/leave-requests")
	{
		leaves.GET("", h.ListAll)
		leaves.GET("/my-leaves", h.ListMine)
		leaves.GET("/pending", h.ListPending)
		leaves.GET("/:id", h.GetById)
		leaves.POST("",
			middleware.RateLimitByEmployee(writeRate, writeBurst),
			middleware.Idempotency(rdb),
			h.Create,
		)
		leaves.PUT("/:id/approve-reject",
			middleware.RateLimitByEmployee(writeRate, writeBurst),
			h.ApproveOrReject,
		)
	}
}
