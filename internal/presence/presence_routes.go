package presence

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
	read := middleware.RBACAuthorize(rbacService, rbac.ResourcePresence, rbac.ActionRead)
	write := middleware.RBACAuthorize(rbacService, rbac.ResourcePresence, rbac.ActionWrite)

	presence := r.Group("/presence")
	{
		view := presence.Group("/view")
		view.GET("", read, handler.View)
		view.PUT("/tab", read, handler.SelectTab)
		view.PUT("/category", read, handler.SelectCategory)
		view.PUT("/page", read, handler.SetPage)
		view.PUT("/limit", read, handler.SetLimit)
		view.PUT("/search", read, handler.SetSearch)

		presence.GET("/list", read, handler.ActiveList)
		presence.GET("/recap", read, handler.Recap)

		categories := presence.Group("/categories/:code")
		categories.GET("", read, handler.List)
		categories.GET("/:id", read, handler.Detail)
		categories.PATCH("/:id", write, handler.Edit)
		categories.DELETE("/:id", write, handler.Delete)

		presence.POST("/records", write, handler.CreateRecord)
		presence.PATCH("/records/:id", write, handler.EditRecord)

		presence.POST("/download", read, handler.Download)
		selection.RegisterRoutes(presence, selectionHandler, rbacService, rbac.ResourcePresence)
	}
}
