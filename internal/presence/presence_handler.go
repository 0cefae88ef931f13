package presence

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"hr-dashboard/internal/export"
	"hr-dashboard/internal/form"
	"hr-dashboard/internal/presence/category"
	presenceerrors "hr-dashboard/internal/presence/errors"
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
	l := zap.L().Named("presence.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("presence.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("presence request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bindError(c *gin.Context, err error) {
	h.logger.Warn("http presence bind failed", zap.String("path", c.FullPath()), zap.Error(err))
	response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Input tidak valid", gin.H{"body": err.Error()})
}

func (h *Handler) writeNotification(c *gin.Context, status int, n form.Notification, err error) {
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, status, MutationResponse{Notification: n}, nil)
}

func codeParam(c *gin.Context) (category.Code, error) {
	code, ok := category.Parse(c.Param("code"))
	if !ok {
		return "", presenceerrors.ErrUnknownCategory
	}
	return code, nil
}

func idParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, presenceerrors.ErrInvalidID
	}
	return id, nil
}

// upload mengambil lampiran "file" bila request multipart membawanya. Field
// yang sama bisa berisi nama file lama sebagai teks.
func upload(c *gin.Context) *multipart.FileHeader {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil
	}
	return fh
}

func (h *Handler) View(c *gin.Context) {
	resp, err := h.service.View(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SelectTab(c *gin.Context) {
	var req TabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	resp, err := h.service.SelectTab(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SelectCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	resp, err := h.service.SelectCategory(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SetPage(c *gin.Context) {
	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	resp, err := h.service.SetPage(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SetLimit(c *gin.Context) {
	var req LimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	resp, err := h.service.SetLimit(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SetSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	resp, err := h.service.SetSearch(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ActiveList(c *gin.Context) {
	resp, err := h.service.ActiveList(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	code, err := codeParam(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	p, err := request.BindList(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	filter := category.Filter{Page: p.Page, Limit: p.Limit, Search: p.Search}

	resp, err := h.service.List(c.Request.Context(), c.GetString("user_id"), code, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	meta := response.NewPageMeta(resp.CurrentPage, resp.TotalPages, p.Limit)
	response.Success(c, http.StatusOK, resp.Data, &meta)
}

func (h *Handler) Detail(c *gin.Context) {
	code, err := codeParam(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Detail(c.Request.Context(), code, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Edit(c *gin.Context) {
	code, err := codeParam(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req EditRequest
	if err := c.ShouldBind(&req); err != nil {
		h.bindError(c, err)
		return
	}
	req.Upload = upload(c)

	n, err := h.service.Edit(c.Request.Context(), code, id, req)
	h.writeNotification(c, http.StatusOK, n, err)
}

func (h *Handler) Delete(c *gin.Context) {
	code, err := codeParam(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	id, err := idParam(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	n, err := h.service.Delete(c.Request.Context(), code, id)
	h.writeNotification(c, http.StatusOK, n, err)
}

func (h *Handler) Recap(c *gin.Context) {
	resp, err := h.service.Recap(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateRecord(c *gin.Context) {
	var req CreateRecordRequest
	if err := c.ShouldBind(&req); err != nil {
		h.bindError(c, err)
		return
	}
	req.Upload = upload(c)

	n, err := h.service.CreateRecord(c.Request.Context(), req)
	h.writeNotification(c, http.StatusCreated, n, err)
}

func (h *Handler) EditRecord(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req CreateRecordRequest
	if err := c.ShouldBind(&req); err != nil {
		h.bindError(c, err)
		return
	}
	req.Upload = upload(c)

	n, err := h.service.EditRecord(c.Request.Context(), id, req)
	h.writeNotification(c, http.StatusOK, n, err)
}

func (h *Handler) Download(c *gin.Context) {
	file, err := h.service.Export(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="kehadiran.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, file)
}
