package employee

import (
	"github.com/gin-gonic/gin"

	"github.com/aadesh1214/hrms-lite/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	employees := r.Group("/employees")
	{
		employees.GET("/", h.GetAll)
		employees.POST("/", middleware.RateLimitByIP(1, 5), h.Create)
		employees.GET("/:id", h.GetByID)
		employees.DELETE("/:id", middleware.RateLimitByIP(0.5, 2), h.Delete)
	}
}
