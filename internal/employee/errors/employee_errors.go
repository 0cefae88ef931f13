package employeeerrors

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
)

var (
	ErrInvalidLimit = apperror.New(
		apperror.CodeInvalidInput,
		"limit harus salah satu dari 10, 25, 50",
		http.StatusBadRequest,
	)
	ErrOptionsUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Daftar karyawan tidak tersedia",
		http.StatusServiceUnavailable,
	)
)
