package salaryerrors

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
)

var (
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary id",
		http.StatusBadRequest,
	)
	ErrInvalidLimit = apperror.New(
		apperror.CodeInvalidInput,
		"limit harus salah satu dari 10, 25, 50",
		http.StatusBadRequest,
	)
	ErrNothingSelected = apperror.New(
		apperror.CodeInvalidInput,
		"Silahkan ceklis data terlebih dahulu",
		http.StatusBadRequest,
	)
)
