package leave

import (
	"github.com/Thomas-Sunil/newhrms/internal/middleware"
	"github.com/Thomas-Sunil/newhrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	leaves.Use(middleware.ContextLogger(zap.L()))
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetById)
		leaves.GET("/:id/slip", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.Slip)
		leaves.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.POST("/:id/dept-review",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "leave", "review_department"),
			handler.DeptReview,
		)
		leaves.POST("/:id/hr-review",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "leave", "review_hr"),
			handler.HRReview,
		)
	}
}
