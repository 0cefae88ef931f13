package autherrors

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
)

var (
	ErrTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Token not found",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		"INVALID_TOKEN",
		"Invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		"TOKEN_EXPIRED",
		"Token has expired",
		http.StatusUnauthorized,
	)
	ErrUserNotFoundInToken = apperror.New(
		"INVALID_TOKEN",
		"User ID not found in token",
		http.StatusUnauthorized,
	)
	ErrForbidden = apperror.ErrForbidden
)
