package attendance

import (
	"github.com/Thomas-Sunil/newhrms/internal/middleware"
	"github.com/Thomas-Sunil/newhrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	attendances.Use(middleware.ContextLogger(zap.L()))
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendances.GET("/calendar", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.Calendar)
		attendances.POST("/clock-in",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			h.ClockIn,
		)
		attendances.POST("/clock-out",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			h.ClockOut,
		)
		attendances.POST("/absent", middleware.RBACAuthorize(rbacService, "attendance", "mark_absent"), h.MarkAbsent)
	}
}
