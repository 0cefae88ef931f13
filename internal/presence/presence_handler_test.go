package presence_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hr-dashboard/internal/backend"
	"hr-dashboard/internal/export"
	"hr-dashboard/internal/form"
	"hr-dashboard/internal/presence"
	"hr-dashboard/internal/presence/category"
	presenceerrors "hr-dashboard/internal/presence/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type apiError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePresenceService struct {
	presence.Service

	setLimitFn func(ctx context.Context, userID string, req presence.LimitRequest) (presence.ViewResponse, error)
	listFn     func(ctx context.Context, userID string, code category.Code, filter category.Filter) (backend.Page[json.RawMessage], error)
	editFn     func(ctx context.Context, code category.Code, id int64, req presence.EditRequest) (form.Notification, error)
	exportFn   func(ctx context.Context, userID string) ([]byte, error)
}

func (f *fakePresenceService) SetLimit(ctx context.Context, userID string, req presence.LimitRequest) (presence.ViewResponse, error) {
	return f.setLimitFn(ctx, userID, req)
}
func (f *fakePresenceService) List(ctx context.Context, userID string, code category.Code, filter category.Filter) (backend.Page[json.RawMessage], error) {
	return f.listFn(ctx, userID, code, filter)
}
func (f *fakePresenceService) Edit(ctx context.Context, code category.Code, id int64, req presence.EditRequest) (form.Notification, error) {
	return f.editFn(ctx, code, id, req)
}
func (f *fakePresenceService) Export(ctx context.Context, userID string) ([]byte, error) {
	return f.exportFn(ctx, userID)
}

func newContext(method, target string, body *bytes.Buffer, contentType string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if body == nil {
		body = &bytes.Buffer{}
	}
	c.Request = httptest.NewRequest(method, target, body)
	if contentType != "" {
		c.Request.Header.Set("Content-Type", contentType)
	}
	c.Set("user_id", "u1")
	return c, w
}

func TestPresenceHandler_List(t *testing.T) {
	t.Run("query is forwarded to the category slice", func(t *testing.T) {
		svc := &fakePresenceService{
			listFn: func(ctx context.Context, userID string, code category.Code, filter category.Filter) (backend.Page[json.RawMessage], error) {
				assert.Equal(t, "u1", userID)
				assert.Equal(t, category.ArriveLate, code)
				assert.Equal(t, category.Filter{Page: 2, Limit: 25, Search: "Budi"}, filter)
				return backend.Page[json.RawMessage]{
					Data:        []json.RawMessage{json.RawMessage(`{"id":1}`)},
					CurrentPage: 2,
					TotalPages:  3,
				}, nil
			},
		}

		h := presence.NewHandler(svc, zap.NewNop())
		c, w := newContext(http.MethodGet, "/presence/categories/ht?page=2&limit=25&search=Budi", nil, "")
		c.Params = gin.Params{{Key: "code", Value: "ht"}}

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.JSONEq(t, `[{"id":1}]`, string(env.Data))
	})

	t.Run("unknown code", func(t *testing.T) {
		h := presence.NewHandler(&fakePresenceService{}, zap.NewNop())
		c, w := newContext(http.MethodGet, "/presence/categories/zz", nil, "")
		c.Params = gin.Params{{Key: "code", Value: "zz"}}

		h.List(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})
}

func TestPresenceHandler_SetLimit(t *testing.T) {
	t.Run("invalid limit", func(t *testing.T) {
		svc := &fakePresenceService{
			setLimitFn: func(ctx context.Context, userID string, req presence.LimitRequest) (presence.ViewResponse, error) {
				assert.Equal(t, 30, req.Limit)
				return presence.ViewResponse{}, presenceerrors.ErrInvalidLimit
			},
		}

		h := presence.NewHandler(svc, zap.NewNop())
		c, w := newContext(http.MethodPut, "/presence/view/limit", bytes.NewBufferString(`{"limit":30}`), "application/json")

		h.SetLimit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, presenceerrors.ErrInvalidLimit.Message, env.Error.Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := presence.NewHandler(&fakePresenceService{}, zap.NewNop())
		c, w := newContext(http.MethodPut, "/presence/view/limit", bytes.NewBufferString(`{"limit":`), "application/json")

		h.SetLimit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestPresenceHandler_Edit(t *testing.T) {
	t.Run("multipart keeps existing file name", func(t *testing.T) {
		svc := &fakePresenceService{
			editFn: func(ctx context.Context, code category.Code, id int64, req presence.EditRequest) (form.Notification, error) {
				assert.Equal(t, category.Sick, code)
				assert.Equal(t, int64(12), id)
				assert.Equal(t, "3", req.EmployeeID)
				assert.Equal(t, "surat-dokter.pdf", req.File)
				assert.Nil(t, req.Upload)
				return form.Success("Berhasil mengedit data kehadiran"), nil
			},
		}

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		_ = mw.WriteField("employee_id", "3")
		_ = mw.WriteField("date", "2024-05-01")
		_ = mw.WriteField("description", "Demam")
		_ = mw.WriteField("file", "surat-dokter.pdf")
		_ = mw.Close()

		h := presence.NewHandler(svc, zap.NewNop())
		c, w := newContext(http.MethodPatch, "/presence/categories/S/12", &body, mw.FormDataContentType())
		c.Params = gin.Params{{Key: "code", Value: "S"}, {Key: "id", Value: "12"}}

		h.Edit(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got presence.MutationResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, form.LevelSuccess, got.Notification.Level)
	})

	t.Run("field errors are returned per field", func(t *testing.T) {
		svc := &fakePresenceService{
			editFn: func(ctx context.Context, code category.Code, id int64, req presence.EditRequest) (form.Notification, error) {
				return form.Notification{}, form.FieldErrors{"clock_in": form.MsgRequired}
			},
		}

		h := presence.NewHandler(svc, zap.NewNop())
		c, w := newContext(http.MethodPatch, "/presence/categories/H/1", bytes.NewBufferString(`{"employee_id":"3"}`), "application/json")
		c.Params = gin.Params{{Key: "code", Value: "H"}, {Key: "id", Value: "1"}}

		h.Edit(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, form.MsgRequired, env.Error.Details["clock_in"])
	})

	t.Run("invalid id", func(t *testing.T) {
		h := presence.NewHandler(&fakePresenceService{}, zap.NewNop())
		c, w := newContext(http.MethodPatch, "/presence/categories/H/abc", nil, "")
		c.Params = gin.Params{{Key: "code", Value: "H"}, {Key: "id", Value: "abc"}}

		h.Edit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPresenceHandler_Download(t *testing.T) {
	t.Run("nothing selected", func(t *testing.T) {
		svc := &fakePresenceService{
			exportFn: func(ctx context.Context, userID string) ([]byte, error) {
				return nil, presenceerrors.ErrNothingSelected
			},
		}

		h := presence.NewHandler(svc, zap.NewNop())
		c, w := newContext(http.MethodPost, "/presence/download", nil, "")

		h.Download(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "Silahkan ceklis data terlebih dahulu", env.Error.Message)
	})

	t.Run("xlsx attachment", func(t *testing.T) {
		svc := &fakePresenceService{
			exportFn: func(ctx context.Context, userID string) ([]byte, error) {
				return []byte("xlsx"), nil
			},
		}

		h := presence.NewHandler(svc, zap.NewNop())
		c, w := newContext(http.MethodPost, "/presence/download", nil, "")

		h.Download(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
		assert.True(t, strings.Contains(w.Header().Get("Content-Disposition"), "kehadiran.xlsx"))
	})
}
