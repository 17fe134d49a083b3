package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/relocate/tui-go/internal/model"
)

// Error is a non-2xx response from the API
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
}

func newError(resp *resty.Response) *Error {
	e := &Error{StatusCode: resp.StatusCode()}
	if body, ok := resp.Error().(*model.ErrorBody); ok && body.Detail != "" {
		e.Detail = body.Detail
		return e
	}
	if raw := strings.TrimSpace(resp.String()); raw != "" {
		e.Detail = raw
		return e
	}
	e.Detail = http.StatusText(e.StatusCode)
	return e
}

// IsUnauthorized reports whether err is a 401 from the API
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
