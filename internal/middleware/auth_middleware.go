package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	autherrors "hr-dashboard/internal/auth/errors"
	"hr-dashboard/internal/domain"
	"hr-dashboard/internal/shared/apperror"
	"hr-dashboard/internal/shared/contextutil"
	"hr-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthConfig struct {
	Secret string
	Cookie string
	// AllowUnverified: tanpa Secret, token hanya di-parse (exp tetap dicek).
	// Hanya untuk development lokal; tanpa flag ini semua token ditolak
	// ketika Secret kosong.
	AllowUnverified bool
}

var errNoVerificationKey = errors.New("auth: no token verification key configured")

func abortWith(c *gin.Context, err *apperror.AppError) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}

func extractToken(c *gin.Context, cookieName string) string {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && token != "" {
		return strings.TrimSpace(token)
	}
	if cookieName == "" {
		cookieName = "token"
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

func parseClaims(tokenString string, cfg AuthConfig) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	secret := cfg.Secret
	if secret == "" {
		if !cfg.AllowUnverified {
			return nil, errNoVerificationKey
		}
		_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
		if err != nil {
			return nil, err
		}
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(time.Now()) {
			return nil, jwt.ErrTokenExpired
		}
		return claims, nil
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func claimString(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		switch v := claims[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

// AuthMiddleware membaca token dashboard (header Bearer atau cookie), menaruh
// user_id dan role ke gin context, dan menyimpan token untuk diteruskan ke backend HR.
func AuthMiddleware(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c, cfg.Cookie)
		if tokenString == "" {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		claims, err := parseClaims(tokenString, cfg)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, autherrors.ErrTokenExpired)
				return
			}
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		userID := claimString(claims, "user_id", "id", "sub")
		if userID == "" {
			abortWith(c, autherrors.ErrUserNotFoundInToken)
			return
		}

		role := strings.ToUpper(claimString(claims, "role"))
		if role == "" {
			role = domain.DefaultRole
		}

		c.Set("user_id", userID)
		c.Set("role", role)

		ctx := c.Request.Context()
		ctx = contextutil.WithToken(ctx, tokenString)
		ctx = contextutil.WithUserID(ctx, userID)
		ctx = contextutil.WithRole(ctx, role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
