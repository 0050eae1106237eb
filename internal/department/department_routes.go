package department

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
	departments := r.Group("/departments")
	{
		departments.GET("", middleware.Authorize(gate, access.OpDepartmentRead), h.GetAll)
		departments.POST("", middleware.Authorize(gate, access.OpDepartmentWrite), h.Create)
		departments.GET("/:id", middleware.Authorize(gate, access.OpDepartmentRead), h.GetById)
		departments.PUT("/:id", middleware.Authorize(gate, access.OpDepartmentWrite), h.Update)
		departments.PUT("/:id/assign-hod", middleware.Authorize(gate, access.OpDepartmentAssignHOD), h.AssignHOD)
		departments.DELETE("/:id", middleware.Authorize(gate, access.OpDepartmentWrite), h.Delete)
	}
}
