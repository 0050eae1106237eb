package leavetype

import (
	"github.com/Falasefemi2/hr-portal/internal/access"
	"github.com/Falasefemi2/hr-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	gate access.Gate,
) {
	types := r.Group("/leave-types")
	{
		types.GET("", middleware.Authorize(gate, access.OpLeaveTypeRead), h.GetAll)
		types.POST("", middleware.Authorize(gate, access.OpLeaveTypeWrite), h.Create)
		types.GET("/:id", middleware.Authorize(gate, access.OpLeaveTypeRead), h.GetById)
		types.PUT("/:id", middleware.Authorize(gate, access.OpLeaveTypeWrite), h.Update)
		types.DELETE("/:id", middleware.Authorize(gate, access.OpLeaveTypeWrite), h.Delete)
	}
}
