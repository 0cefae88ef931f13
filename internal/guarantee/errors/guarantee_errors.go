package guaranteeerrors

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
)

var (
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid guarantee id",
		http.StatusBadRequest,
	)
	ErrInvalidLimit = apperror.New(
		apperror.CodeInvalidInput,
		"limit harus salah satu dari 10, 25, 50",
		http.StatusBadRequest,
	)
)
