package auth

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
	"hr-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	cookie  string
	secure  bool
	logger  *zap.Logger
}

func NewHandler(s Service, cookie string, secure bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	if cookie == "" {
		cookie = "token"
	}
	return &Handler{service: s, cookie: cookie, secure: secure, logger: l}
}

func (ctrl *Handler) Me(c *gin.Context) {
	resp, err := ctrl.service.Me(c.Request.Context(), c.GetString("user_id"), c.GetString("role"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Logout selalu menghapus cookie token; kegagalan membersihkan state hanya dicatat.
func (ctrl *Handler) Logout(c *gin.Context) {
	if err := ctrl.service.Logout(c.Request.Context(), c.GetString("user_id")); err != nil {
		ctrl.logger.Warn("logout cleanup failed", zap.Error(err))
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     ctrl.cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ctrl.secure,
		SameSite: http.SameSiteLaxMode,
	})

	response.Success(c, http.StatusOK, "Logout success.", nil)
}
