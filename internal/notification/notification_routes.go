package notification

import (
	"github.com/Thomas-Sunil/newhrms/internal/middleware"
	"github.com/Thomas-Sunil/newhrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, logger *zap.Logger) {
	group := r.Group("/notifications")
	group.Use(middleware.AuthMiddleware())
	group.Use(middleware.ContextLogger(logger))
	{
		group.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "notification", "read"),
			handler.List,
		)
		group.POST("/read-all",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "notification", "update"),
			handler.MarkAllRead,
		)
		group.POST("/:id/read",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "notification", "update"),
			handler.MarkRead,
		)
	}
}
