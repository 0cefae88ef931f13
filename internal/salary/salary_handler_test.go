package salary_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hr-dashboard/internal/backend"
	"hr-dashboard/internal/form"
	"hr-dashboard/internal/salary"
	salaryerrors "hr-dashboard/internal/salary/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type fakeSalaryService struct {
	salary.Service

	listFn   func(ctx context.Context, userID string, q backend.ListQuery) (backend.Page[salary.MainSalaryResponse], error)
	createFn func(ctx context.Context, req salary.MainSalaryRequest) (form.Notification, error)
	exportFn func(ctx context.Context, userID string) ([]byte, error)
}

func (f *fakeSalaryService) List(ctx context.Context, userID string, q backend.ListQuery) (backend.Page[salary.MainSalaryResponse], error) {
	return f.listFn(ctx, userID, q)
}
func (f *fakeSalaryService) Create(ctx context.Context, req salary.MainSalaryRequest) (form.Notification, error) {
	return f.createFn(ctx, req)
}
func (f *fakeSalaryService) Export(ctx context.Context, userID string) ([]byte, error) {
	return f.exportFn(ctx, userID)
}

func setupRouter(svc salary.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "u1")
		c.Next()
	})
	h := salary.NewHandler(svc, zap.NewNop())
	r.GET("/salaries/main", h.List)
	r.POST("/salaries/main", h.Create)
	r.POST("/salaries/download", h.Download)
	return r
}

func TestSalaryHandler_List(t *testing.T) {
	svc := &fakeSalaryService{
		listFn: func(ctx context.Context, userID string, q backend.ListQuery) (backend.Page[salary.MainSalaryResponse], error) {
			assert.Equal(t, backend.ListQuery{Page: 1, Limit: 25}, q)
			return backend.Page[salary.MainSalaryResponse]{
				Data:        []salary.MainSalaryResponse{{ID: 1, EmployeeName: "Budi", MainSalary: "4500000.00"}},
				CurrentPage: 1,
				TotalPages:  4,
			}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/salaries/main?limit=25", nil)
	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Contains(t, string(env.Meta), `"totalPages":4`)
}

func TestSalaryHandler_Create(t *testing.T) {
	svc := &fakeSalaryService{
		createFn: func(ctx context.Context, req salary.MainSalaryRequest) (form.Notification, error) {
			assert.Equal(t, "0", req.MainSalary)
			return form.Notification{}, form.FieldErrors{"main_salary": form.MsgInvalid}
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/salaries/main", bytes.NewBufferString(`{"employee_id":"3","main_salary":"0"}`))
	req.Header.Set("Content-Type", "application/json")
	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, form.MsgInvalid, env.Error.Details["main_salary"])
}

func TestSalaryHandler_Download(t *testing.T) {
	svc := &fakeSalaryService{
		exportFn: func(ctx context.Context, userID string) ([]byte, error) {
			return nil, salaryerrors.ErrNothingSelected
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/salaries/download", nil)
	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Silahkan ceklis data terlebih dahulu", env.Error.Message)
}
