package role

import (
	"github.com/Thomas-Sunil/newhrms/internal/middleware"
	"github.com/Thomas-Sunil/newhrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	roles := r.Group("/roles")
	roles.Use(middleware.AuthMiddleware())
	roles.Use(middleware.ContextLogger(zap.L()))
	{
		roles.GET("", middleware.RBACAuthorize(rbacService, "role", "read"), h.List)
		roles.POST("", middleware.RBACAuthorize(rbacService, "role", "create"), h.Create)
	}
}
