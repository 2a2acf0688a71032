package client

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/photodesk/internal/common"
)

// APIError is a non-success response from the backend. It unwraps to the
// common sentinel matching its status code.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("api error %d: %v: %s", e.StatusCode, e.Err, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

func mapStatus(code int) error {
	switch {
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		return common.ErrValidation
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return common.ErrUnauthorized
	case code == http.StatusNotFound, code == http.StatusGone:
		return common.ErrNotFound
	case code == http.StatusConflict:
		return common.ErrConflict
	case code >= 500:
		return common.ErrUnavailable
	default:
		return fmt.Errorf("unexpected status %d", code)
	}
}
