package selection

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
	"hr-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	screen  string
	logger  *zap.Logger
}

// NewHandler membuat handler untuk satu layar (contoh "presence", "main-salary").
func NewHandler(service Service, screen string, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("selection.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("selection.handler")
	}
	return &Handler{service: service, screen: screen, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("selection request failed",
		zap.String("screen", h.screen),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Get(c *gin.Context) {
	sel, err := h.service.Get(c.Request.Context(), h.screen, c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(sel), nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Input tidak valid", gin.H{"body": err.Error()})
		return
	}

	sel, err := h.service.Update(c.Request.Context(), h.screen, c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(sel), nil)
}

func (h *Handler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), h.screen, c.GetString("user_id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, SelectionResponse{Screen: h.screen, IDs: []int64{}}, nil)
}
