package salary

import (
	"net/http"
	"strconv"

	"hr-dashboard/internal/backend"
	"hr-dashboard/internal/export"
	"hr-dashboard/internal/form"
	salaryerrors "hr-dashboard/internal/salary/errors"
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
	l := zap.L().Named("salary.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("salary request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeNotification(c *gin.Context, status int, n form.Notification, err error) {
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, status, gin.H{"notification": n}, nil)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) List(c *gin.Context) {
	p, err := request.BindList(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	q := backend.ListQuery{Page: p.Page, Limit: p.Limit, Search: p.Search}

	resp, err := h.service.List(c.Request.Context(), c.GetString("user_id"), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	meta := response.NewPageMeta(resp.CurrentPage, resp.TotalPages, p.Limit)
	response.Success(c, http.StatusOK, resp.Data, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, salaryerrors.ErrInvalidID)
		return
	}
	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req MainSalaryRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("http create main salary bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Input tidak valid", gin.H{"body": err.Error()})
		return
	}
	n, err := h.service.Create(c.Request.Context(), req)
	h.writeNotification(c, http.StatusCreated, n, err)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, salaryerrors.ErrInvalidID)
		return
	}
	var req MainSalaryRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("http update main salary bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Input tidak valid", gin.H{"body": err.Error()})
		return
	}
	n, err := h.service.Update(c.Request.Context(), id, req)
	h.writeNotification(c, http.StatusOK, n, err)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, salaryerrors.ErrInvalidID)
		return
	}
	n, err := h.service.Delete(c.Request.Context(), id)
	h.writeNotification(c, http.StatusOK, n, err)
}

func (h *Handler) Download(c *gin.Context) {
	file, err := h.service.Export(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="gaji-pokok.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, file)
}
