package policy

import (
	"github.com/Thomas-Sunil/newhrms/internal/middleware"
	"github.com/Thomas-Sunil/newhrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	policies := r.Group("/policies")
	policies.Use(middleware.AuthMiddleware())
	policies.Use(middleware.ContextLogger(zap.L()))
	{
		policies.GET("", middleware.RBACAuthorize(rbacService, "policy", "read"), h.GetAll)
		policies.POST("", middleware.RBACAuthorize(rbacService, "policy", "create"), h.Create)
		policies.GET("/:id", middleware.RBACAuthorize(rbacService, "policy", "read"), h.GetById)
		policies.PUT("/:id", middleware.RBACAuthorize(rbacService, "policy", "update"), h.Update)
		policies.DELETE("/:id", middleware.RBACAuthorize(rbacService, "policy", "delete"), h.Delete)
	}
}
