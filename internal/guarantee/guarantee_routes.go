package guarantee

import (
	"hr-dashboard/internal/middleware"
	"hr-dashboard/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	read := middleware.RBACAuthorize(rbacService, rbac.ResourceGuarantee, rbac.ActionRead)
	write := middleware.RBACAuthorize(rbacService, rbac.ResourceGuarantee, rbac.ActionWrite)

	guarantees := r.Group("/guarantees")
	{
		guarantees.GET("/options", read, handler.Options)

		incoming := guarantees.Group("/incoming")
		incoming.GET("", read, handler.ListIncoming)
		incoming.GET("/:id", read, handler.GetIncoming)
		incoming.POST("", write, handler.CreateIncoming)
		incoming.PATCH("/:id", write, handler.UpdateIncoming)
		incoming.DELETE("/:id", write, handler.DeleteIncoming)

		outgoing := guarantees.Group("/outgoing")
		outgoing.GET("", read, handler.ListOutgoing)
		outgoing.GET("/:id", read, handler.GetOutgoing)
		outgoing.PATCH("/:id", write, handler.UpdateOutgoing)
		outgoing.DELETE("/:id", write, handler.DeleteOutgoing)
	}
}
