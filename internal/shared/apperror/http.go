package apperror

import (
	"errors"
	"net/http"
)

// HTTPError adalah bentuk akhir error sebelum ditulis ke response envelope.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// fieldErrors dipenuhi oleh form.FieldErrors tanpa import langsung.
type fieldErrors interface {
	error
	Fields() map[string]string
}

// upstreamError dipenuhi oleh backend.HTTPError.
type upstreamError interface {
	error
	UpstreamStatus() int
	UpstreamMessage() string
}

func ToHTTP(err error) HTTPError {
	if err == nil {
		return HTTPError{Status: http.StatusOK}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		out := HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
		if len(appErr.Details) > 0 {
			out.Details = appErr.Details
		}
		return out
	}

	var fe fieldErrors
	if errors.As(err, &fe) {
		return HTTPError{
			Status:  http.StatusUnprocessableEntity,
			Code:    CodeValidation,
			Message: "Input tidak valid",
			Details: fe.Fields(),
		}
	}

	var ue upstreamError
	if errors.As(err, &ue) {
		status := ue.UpstreamStatus()
		switch {
		case status == http.StatusUnauthorized:
			return HTTPError{Status: status, Code: CodeUnauthorized, Message: ue.UpstreamMessage()}
		case status == http.StatusForbidden:
			return HTTPError{Status: status, Code: CodeForbidden, Message: ue.UpstreamMessage()}
		case status == http.StatusNotFound:
			return HTTPError{Status: status, Code: CodeNotFound, Message: ue.UpstreamMessage()}
		case status >= 400 && status < 500:
			return HTTPError{Status: status, Code: CodeInvalidInput, Message: ue.UpstreamMessage()}
		default:
			return HTTPError{Status: http.StatusBadGateway, Code: CodeUpstreamError, Message: ue.UpstreamMessage()}
		}
	}

	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}
