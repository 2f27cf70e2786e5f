package auth

import (
	"github.com/Thomas-Sunil/newhrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", middleware.RateLimitByIP(0.5, 5), handler.RefreshToken)
		auth.POST("/logout", handler.Logout)
		auth.GET("/lookup-username", middleware.RateLimitByIP(0.2, 5), handler.LookupUsername)
	}

	setup := r.Group("/setup")
	setup.Use(middleware.RateLimitByIP(0.05, 2))
	{
		setup.POST("/bootstrap-ceo", handler.BootstrapCEO)
		setup.POST("/bootstrap-hr", handler.BootstrapHR)
	}
}
