package guarantee

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"hr-dashboard/internal/backend"
	"hr-dashboard/internal/form"
	guaranteeerrors "hr-dashboard/internal/guarantee/errors"
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
	l := zap.L().Named("guarantee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("guarantee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("guarantee request failed",
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

func upload(c *gin.Context) *multipart.FileHeader {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil
	}
	return fh
}

func (h *Handler) list(c *gin.Context, kind Kind) {
	p, err := request.BindList(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	q := backend.ListQuery{Page: p.Page, Limit: p.Limit, Search: p.Search}

	resp, err := h.service.List(c.Request.Context(), c.GetString("user_id"), kind, q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	meta := response.NewPageMeta(resp.CurrentPage, resp.TotalPages, p.Limit)
	response.Success(c, http.StatusOK, resp.Data, &meta)
}

func (h *Handler) get(c *gin.Context, kind Kind) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, guaranteeerrors.ErrInvalidID)
		return
	}
	resp, err := h.service.GetByID(c.Request.Context(), kind, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) remove(c *gin.Context, kind Kind) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, guaranteeerrors.ErrInvalidID)
		return
	}
	n, err := h.service.Delete(c.Request.Context(), kind, id)
	h.writeNotification(c, http.StatusOK, n, err)
}

func (h *Handler) ListIncoming(c *gin.Context)   { h.list(c, Incoming) }
func (h *Handler) GetIncoming(c *gin.Context)    { h.get(c, Incoming) }
func (h *Handler) DeleteIncoming(c *gin.Context) { h.remove(c, Incoming) }
func (h *Handler) ListOutgoing(c *gin.Context)   { h.list(c, Outgoing) }
func (h *Handler) GetOutgoing(c *gin.Context)    { h.get(c, Outgoing) }
func (h *Handler) DeleteOutgoing(c *gin.Context) { h.remove(c, Outgoing) }

func (h *Handler) Options(c *gin.Context) {
	resp, err := h.service.Options(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateIncoming(c *gin.Context) {
	var req IncomingRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("http create incoming guarantee bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Input tidak valid", gin.H{"body": err.Error()})
		return
	}
	req.Upload = upload(c)

	n, err := h.service.CreateIncoming(c.Request.Context(), req)
	h.writeNotification(c, http.StatusCreated, n, err)
}

func (h *Handler) UpdateIncoming(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, guaranteeerrors.ErrInvalidID)
		return
	}
	var req IncomingRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("http update incoming guarantee bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Input tidak valid", gin.H{"body": err.Error()})
		return
	}
	req.Upload = upload(c)

	n, err := h.service.UpdateIncoming(c.Request.Context(), id, req)
	h.writeNotification(c, http.StatusOK, n, err)
}

func (h *Handler) UpdateOutgoing(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, guaranteeerrors.ErrInvalidID)
		return
	}
	var req OutgoingRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("http update outgoing guarantee bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Input tidak valid", gin.H{"body": err.Error()})
		return
	}
	req.Upload = upload(c)

	n, err := h.service.UpdateOutgoing(c.Request.Context(), id, req)
	h.writeNotification(c, http.StatusOK, n, err)
}
