package selection

import (
	"hr-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes memasang /selection di bawah group layar pemiliknya.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, resource string) {
	sel := r.Group("/selection")
	{
		sel.GET("", middleware.RBACAuthorize(rbacService, resource, "read"), handler.Get)
		sel.PUT("", middleware.RBACAuthorize(rbacService, resource, "read"), handler.Update)
		sel.DELETE("", middleware.RBACAuthorize(rbacService, resource, "read"), handler.Clear)
	}
}
