package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hr-dashboard/internal/domain"
	"hr-dashboard/internal/middleware"
	"hr-dashboard/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return s
}

func authEngine(cfg middleware.AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(cfg), func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
			"token":   contextutil.GetToken(ctx),
		})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "s3cret"

	t.Run("bearer token verified with secret", func(t *testing.T) {
		token := signToken(t, secret, jwt.MapClaims{"user_id": "u-1", "role": "finance"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		authEngine(middleware.AuthConfig{Secret: secret}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var got map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "u-1", got["user_id"])
		assert.Equal(t, domain.RoleFinance, got["role"])
		assert.Equal(t, token, got["token"])
	})

	t.Run("cookie token unverified in local development defaults role", func(t *testing.T) {
		token := signToken(t, "backend-only-secret", jwt.MapClaims{"sub": "42"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})

		authEngine(middleware.AuthConfig{Cookie: "token", AllowUnverified: true}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var got map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "42", got["user_id"])
		assert.Equal(t, domain.DefaultRole, got["role"])
	})

	t.Run("numeric id claim", func(t *testing.T) {
		token := signToken(t, secret, jwt.MapClaims{"id": 7})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		authEngine(middleware.AuthConfig{Secret: secret}).ServeHTTP(w, req)

		var got map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "7", got["user_id"])
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		authEngine(middleware.AuthConfig{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("wrong signature", func(t *testing.T) {
		token := signToken(t, "other", jwt.MapClaims{"user_id": "u-1"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		authEngine(middleware.AuthConfig{Secret: secret}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_TOKEN", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("expired token even when unverified", func(t *testing.T) {
		token := signToken(t, secret, jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(-time.Hour).Unix()})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		authEngine(middleware.AuthConfig{AllowUnverified: true}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_EXPIRED", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("token signed with another key cannot impersonate", func(t *testing.T) {
		token := signToken(t, "attacker-key", jwt.MapClaims{"user_id": "victim-42", "role": "ADMIN"})

		for _, cfg := range []middleware.AuthConfig{{Secret: secret}, {}} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			authEngine(cfg).ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			env := decodeEnvelope(t, w.Body.Bytes())
			assert.False(t, env.Ok)
			assert.Equal(t, "INVALID_TOKEN", env.Error.Code)
			assert.NotContains(t, w.Body.String(), "victim-42")
		}
	})

	t.Run("token without user", func(t *testing.T) {
		token := signToken(t, secret, jwt.MapClaims{"role": "HR"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		authEngine(middleware.AuthConfig{Secret: secret}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

type fakeRBAC struct {
	enforceFn func(req domain.EnforceRequest) (bool, error)
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) { return f.enforceFn(req) }

func rbacEngine(svc middleware.RBACService, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/salaries", func(c *gin.Context) {
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}, middleware.RBACAuthorize(svc, "salary", "read"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRBACAuthorize(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		svc := &fakeRBAC{enforceFn: func(req domain.EnforceRequest) (bool, error) {
			assert.Equal(t, domain.EnforceRequest{Role: "FINANCE", Resource: "salary", Action: "read"}, req)
			return true, nil
		}}
		w := httptest.NewRecorder()
		rbacEngine(svc, "FINANCE").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salaries", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		svc := &fakeRBAC{enforceFn: func(domain.EnforceRequest) (bool, error) { return false, nil }}
		w := httptest.NewRecorder()
		rbacEngine(svc, "HR").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salaries", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("missing role", func(t *testing.T) {
		w := httptest.NewRecorder()
		rbacEngine(&fakeRBAC{}, "").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salaries", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("enforcer error", func(t *testing.T) {
		svc := &fakeRBAC{enforceFn: func(domain.EnforceRequest) (bool, error) { return false, errors.New("bad model") }}
		w := httptest.NewRecorder()
		rbacEngine(svc, "HR").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salaries", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-User"))
		c.Next()
	}, middleware.RateLimitByUser(0.001, 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(user string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-User", user)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("a"))
	assert.Equal(t, http.StatusTooManyRequests, do("a"))
	assert.Equal(t, http.StatusOK, do("b"))
}

func TestRequestIDAndContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ContextLogger(zap.NewNop()))
	r.GET("/x", func(c *gin.Context) {
		ctx := c.Request.Context()
		assert.NotNil(t, contextutil.GetLogger(ctx, nil))
		c.String(http.StatusOK, contextutil.GetRequestID(ctx))
	})

	do := func(rid string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if rid != "" {
			req.Header.Set(middleware.RequestIDHeader, rid)
		}
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("client id is reused", func(t *testing.T) {
		w := do("req-12345")
		assert.Equal(t, "req-12345", w.Body.String())
		assert.Equal(t, "req-12345", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("missing id is generated", func(t *testing.T) {
		w := do("")
		assert.Len(t, w.Body.String(), 36)
		assert.Equal(t, w.Body.String(), w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("unsafe id is replaced", func(t *testing.T) {
		w := do("bad id with spaces")
		assert.NotEqual(t, "bad id with spaces", w.Body.String())
		assert.Len(t, w.Body.String(), 36)
	})
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cacheKey := middleware.IdempotencyKey("/leave-types", "u1", "k-1")

	newEngine := func(calls *int) (*gin.Engine, redismock.ClientMock) {
		rdb, mock := redismock.NewClientMock()
		r := gin.New()
		r.POST("/leave-types", func(c *gin.Context) {
			c.Set("user_id", "u1")
			c.Next()
		}, middleware.Idempotency(rdb, zap.NewNop()), func(c *gin.Context) {
			*calls++
			c.Data(http.StatusCreated, "application/json", []byte(`{"ok":true}`))
		})
		return r, mock
	}

	t.Run("first request stores response and releases lock", func(t *testing.T) {
		calls := 0
		r, mock := newEngine(&calls)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, `{"status":201,"body":{"ok":true}}`, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leave-types", nil)
		req.Header.Set("Idempotency-Key", "k-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay returns stored response without calling handler", func(t *testing.T) {
		calls := 0
		r, mock := newEngine(&calls)

		mock.ExpectGet(cacheKey).SetVal(`{"status":201,"body":{"ok":true}}`)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leave-types", nil)
		req.Header.Set("Idempotency-Key", "k-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
		assert.Equal(t, 0, calls)
	})

	t.Run("concurrent duplicate gets conflict", func(t *testing.T) {
		calls := 0
		r, mock := newEngine(&calls)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leave-types", nil)
		req.Header.Set("Idempotency-Key", "k-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, calls)
	})

	t.Run("no key passes through", func(t *testing.T) {
		calls := 0
		r, _ := newEngine(&calls)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-types", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})
}
