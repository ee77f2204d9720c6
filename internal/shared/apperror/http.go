package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is what a handler writes on the wire: the status and the
// detail string the API contract exposes. Code stays internal for logs.
type HTTPError struct {
	Status int
	Code   string
	Detail string
}

// ToHTTP flattens any error into an HTTPError. Unknown errors never leak
// their text to the client.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status: appErr.HTTPStatus,
			Code:   appErr.Code,
			Detail: appErr.Message,
		}
	}
	return HTTPError{
		Status: http.StatusInternalServerError,
		Code:   CodeInternalError,
		Detail: "An unexpected error occurred",
	}
}
