package employee

import (
	"net/http"

	"hr-dashboard/internal/backend"
	"hr-dashboard/internal/shared/apperror"
	"hr-dashboard/internal/shared/request"
	"hr-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetActive(c *gin.Context) {
	p, err := request.BindList(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	q := backend.ListQuery{Page: p.Page, Limit: p.Limit, Search: p.Search}
	h.logger.Debug("http get active employees", zap.Int("page", p.Page), zap.Int("limit", p.Limit))

	resp, err := h.service.GetActive(c.Request.Context(), c.GetString("user_id"), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPageMeta(resp.CurrentPage, resp.TotalPages, p.Limit)
	response.Success(c, http.StatusOK, resp.Data, &meta)
}

func (h *Handler) GetOptions(c *gin.Context) {
	resp, err := h.service.GetOptions(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
