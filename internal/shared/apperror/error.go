package apperror

import "fmt"

// AppError adalah error yang sudah tahu bentuk response HTTP-nya.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	// Details ikut ditulis ke envelope error, contohnya map field -> aturan validasi.
	Details map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// WithDetails mengembalikan salinan error dengan details terlampir; error
// sentinel tidak ikut berubah.
func (e *AppError) WithDetails(details map[string]string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}
