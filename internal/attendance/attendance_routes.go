package attendance

import (
	"github.com/gin-gonic/gin"

	"github.com/aadesh1214/hrms-lite/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	records := r.Group("/attendance")
	{
		records.GET("/", h.GetAll)
		records.POST("/", middleware.RateLimitByIP(1, 5), h.Mark)
		records.GET("/:employee_id", h.GetByEmployee)
	}
}
