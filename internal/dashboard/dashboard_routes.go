package dashboard

import (
	"github.com/Thomas-Sunil/newhrms/internal/middleware"
	"github.com/Thomas-Sunil/newhrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, logger *zap.Logger) {
	group := r.Group("/dashboard")
	group.Use(middleware.AuthMiddleware())
	group.Use(middleware.ContextLogger(logger))
	{
		group.GET("/stats",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "dashboard", "read"),
			handler.Stats,
		)
	}
}
