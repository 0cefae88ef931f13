package leave

import (
	"net/http"
	"strconv"

	"hr-dashboard/internal/backend"
	leaveerrors "hr-dashboard/internal/leave/errors"
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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ListMaster(c *gin.Context) {
	p, err := request.BindList(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	q := backend.ListQuery{Page: p.Page, Limit: p.Limit, Search: p.Search}

	resp, err := h.service.ListMaster(c.Request.Context(), c.GetString("user_id"), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPageMeta(resp.CurrentPage, resp.TotalPages, p.Limit)
	response.Success(c, http.StatusOK, resp.Data, &meta)
}

func (h *Handler) GetMaster(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, leaveerrors.ErrInvalidLeaveTypeID)
		return
	}

	resp, err := h.service.GetMaster(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateBalance(c *gin.Context) {
	var req CreateBalanceRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("http create leave balance bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Input tidak valid", gin.H{"body": err.Error()})
		return
	}

	n, err := h.service.CreateBalance(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"notification": n}, nil)
}
