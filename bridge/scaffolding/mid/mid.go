// Package mid provides app level middleware support.
package mid

import (
	"github.com/tasmag/tasmag/infrastructure/web"
)

// isError tests if the Encoder has an error inside of it.
func isError(e web.Encoder) error {
	err, isError := e.(error)
	if isError {
		return err
	}
	return nil
}

type httpStatus interface {
	HTTPStatus() int
}

// statusOf reports the status code Respond will use for e.
func statusOf(e web.Encoder) int {
	if e == nil {
		return 204
	}
	if s, ok := e.(httpStatus); ok {
		return s.HTTPStatus()
	}
	if isError(e) != nil {
		return 500
	}
	return 200
}
