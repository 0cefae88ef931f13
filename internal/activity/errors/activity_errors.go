package activityerrors

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
)

var (
	ErrInvalidEvent = apperror.New(
		apperror.CodeInvalidInput,
		"activity event_id and resource are required",
		http.StatusBadRequest,
	)
	ErrInvalidLimit = apperror.New(
		apperror.CodeInvalidInput,
		"limit harus salah satu dari 10, 25, 50",
		http.StatusBadRequest,
	)
)
