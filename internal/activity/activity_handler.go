package activity

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
	"hr-dashboard/internal/shared/request"
	"hr-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	p, err := request.BindList(c)
	if err != nil {
		writeError(c, err)
		return
	}

	resp, err := h.service.List(c.Request.Context(), ListQuery{
		Page:     p.Page,
		Limit:    p.Limit,
		Resource: c.Query("resource"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	meta := response.NewPageMeta(resp.CurrentPage, resp.TotalPages, p.Limit)
	response.Success(c, http.StatusOK, resp.Data, &meta)
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
