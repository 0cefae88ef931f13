package auth

import (
	"hr-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes memasang endpoint sesi; grup induk sudah melewati AuthMiddleware.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	session := r.Group("/auth", middleware.RateLimitByUser(2, 5))
	session.GET("/me", handler.Me)
	session.POST("/logout", handler.Logout)
}
