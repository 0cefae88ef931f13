package presenceerrors

import (
	"net/http"

	"hr-dashboard/internal/shared/apperror"
)

var (
	ErrUnknownCategory = apperror.New(
		apperror.CodeNotFound,
		"kategori kehadiran tidak dikenal",
		http.StatusNotFound,
	)
	ErrUnknownTab = apperror.New(
		apperror.CodeInvalidInput,
		"tab harus presence atau recap",
		http.StatusBadRequest,
	)
	ErrInvalidLimit = apperror.New(
		apperror.CodeInvalidInput,
		"limit harus salah satu dari 10, 25, 50",
		http.StatusBadRequest,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid presence id",
		http.StatusBadRequest,
	)
	ErrNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"kategori ini tidak bisa diubah dari dashboard",
		http.StatusBadRequest,
	)
	ErrNothingSelected = apperror.New(
		apperror.CodeInvalidInput,
		"Silahkan ceklis data terlebih dahulu",
		http.StatusBadRequest,
	)
)
