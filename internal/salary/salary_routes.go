package salary

import (
	"hr-dashboard/internal/middleware"
	"hr-dashboard/internal/rbac"
	"hr-dashboard/internal/selection"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	selectionHandler *selection.Handler,
	rbacService middleware.RBACService,
) {
	read := middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionRead)
	write := middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionWrite)

	salaries := r.Group("/salaries")
	{
		main := salaries.Group("/main")
		main.GET("", read, handler.List)
		main.GET("/:id", read, handler.GetByID)
		main.POST("", write, handler.Create)
		main.PATCH("/:id", write, handler.Update)
		main.DELETE("/:id", write, handler.Delete)

		salaries.POST("/download", read, handler.Download)
		selection.RegisterRoutes(salaries, selectionHandler, rbacService, rbac.ResourceSalary)
	}
}
