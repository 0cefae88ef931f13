package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"hr-dashboard/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
)

type row struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestNew(t *testing.T) {
	for _, raw := range []string{"", "   ", "ftp://hr.local", "http://", "http://%zz"} {
		_, err := New(raw, time.Second)
		assert.Error(t, err, raw)
	}
	c, err := New("http://hr.local/api/", time.Second)
	assert.NoError(t, err)
	assert.Equal(t, "http://hr.local/api", c.baseURL)
}

func TestClient_List_SendsQueryAndBearer(t *testing.T) {
	var gotQuery url.Values
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/presence/arrive-late", r.URL.Path)
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": map[string]any{
				"data":        []map[string]any{{"id": 7, "name": "Budi"}},
				"currentPage": 2,
				"totalPages":  4,
			},
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL, time.Second)
	assert.NoError(t, err)

	ctx := contextutil.WithToken(context.Background(), "tok-123")
	page, err := List[row](ctx, c, "/presence/arrive-late", ListQuery{Page: 2, Limit: 25, Search: "Budi"})
	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, url.Values{"page": {"2"}, "limit": {"25"}, "search": {"Budi"}}, gotQuery)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 4, page.TotalPages)
	assert.Equal(t, []row{{ID: 7, Name: "Budi"}}, page.Data)
}

func TestClient_List_EmptyResultsIsEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"results":{"data":null,"currentPage":1,"totalPages":0}}`)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, time.Second)
	page, err := List[row](context.Background(), c, "/presence/sick", ListQuery{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Len(t, page.Data, 0)
}

func TestClient_Do_BackendMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"Tanggal sudah digunakan"}`)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, time.Second)
	err := c.Do(context.Background(), http.MethodPatch, "/presence/1", nil, JSONBody{Value: map[string]string{"a": "b"}}, nil)

	var httpErr *HTTPError
	assert.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "Tanggal sudah digunakan", httpErr.UpstreamMessage())
}

func TestClient_Do_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, time.Second)
	err := c.Do(context.Background(), http.MethodGet, "/employee/active", nil, nil, nil)

	var httpErr *HTTPError
	assert.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "gateway down", httpErr.Message)
}

func TestClient_Do_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c, _ := New(base, time.Second)
	err := c.Do(context.Background(), http.MethodGet, "/presence", nil, nil, nil)

	var te *TransportError
	assert.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusBadGateway, te.UpstreamStatus())
}

func TestMultipartBody_Encode(t *testing.T) {
	body := MultipartBody{
		Fields: []Field{{Name: "employee_id", Value: "3"}, {Name: "end_date", Value: "2024-05-01"}},
		Files: []File{{
			Field:    "file",
			Filename: "bukti.pdf",
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader("%PDF")), nil
			},
		}},
	}

	r, ct, err := body.Encode()
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", r)
	req.Header.Set("Content-Type", ct)
	assert.NoError(t, req.ParseMultipartForm(1<<20))
	assert.Equal(t, "3", req.FormValue("employee_id"))
	assert.Equal(t, "2024-05-01", req.FormValue("end_date"))

	fh := req.MultipartForm.File["file"]
	assert.Len(t, fh, 1)
	assert.Equal(t, "bukti.pdf", fh[0].Filename)
}

func TestListQuery_Values(t *testing.T) {
	assert.Equal(t, url.Values{}, ListQuery{}.Values())
	assert.Equal(t, url.Values{"page": {"1"}, "limit": {"10"}, "search": {""}}, ListQuery{Page: 1, Limit: 10}.Values())
}
