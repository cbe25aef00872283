package httpmetrics

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrorResponse is a JSON-rendered error, modeled on the teacher's own
// api.ErrorResponse: it carries an HTTP status alongside the JSON body.
type ErrorResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status"`
	ErrorText  string `json:"error,omitempty"`
}

// Render sets the HTTP status code before go-chi/render writes the body.
func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// ErrorNotFound maps metrics.InvalidMetricError to a 404 response, per
// the collaborator contract in spec.md §6.
func ErrorNotFound(err error) *ErrorResponse {
	return &ErrorResponse{
		Err:            err,
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     "Resource not found",
		ErrorText:      err.Error(),
	}
}

// ErrorInvalidRequest maps metrics.DuplicateMetricError and
// metrics.InputTypeError to a 400 response.
func ErrorInvalidRequest(err error) *ErrorResponse {
	return &ErrorResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request",
		ErrorText:      err.Error(),
	}
}

// ErrorInternalServer is the fallback for errors the handler doesn't
// recognize.
func ErrorInternalServer(err error) *ErrorResponse {
	return &ErrorResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal Server Error",
		ErrorText:      err.Error(),
	}
}
