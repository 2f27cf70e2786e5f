package holiday

import (
	"github.com/Thomas-Sunil/newhrms/internal/middleware"
	"github.com/Thomas-Sunil/newhrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	holidays.Use(middleware.ContextLogger(zap.L()))
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "holiday", "read"), h.List)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "create"), h.Create)
		holidays.POST("/import",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "holiday", "create"),
			h.Import,
		)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "holiday", "delete"), h.Delete)
	}
}
