package employeehistory

import (
	"github.com/Thomas-Sunil/newhrms/internal/middleware"
	"github.com/Thomas-Sunil/newhrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	history := r.Group("/employees/:id/history")
	history.Use(middleware.AuthMiddleware())
	history.Use(middleware.ContextLogger(zap.L()))
	{
		history.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "employee_history", "read"),
			handler.List,
		)
		history.POST("",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "employee_history", "create"),
			handler.Record,
		)
	}
}
