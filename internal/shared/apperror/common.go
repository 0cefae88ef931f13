package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	errInvalidQuery = New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
)

// RequiredField dan InvalidField menyertakan nama field asli (tag json) di details.
func RequiredField(label, field string) *AppError {
	return New(CodeInvalidInput, label+" is required", http.StatusBadRequest).
		WithDetails(map[string]string{field: "required"})
}

func InvalidField(label, field, rule string) *AppError {
	return New(CodeInvalidInput, label+" is invalid", http.StatusBadRequest).
		WithDetails(map[string]string{field: rule})
}
