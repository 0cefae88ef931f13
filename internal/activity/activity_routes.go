package activity

import (
	"hr-dashboard/internal/middleware"
	"hr-dashboard/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	r.GET("/activities",
		middleware.RBACAuthorize(rbacService, rbac.ResourceActivity, rbac.ActionRead),
		handler.List,
	)
}
