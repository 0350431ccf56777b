package actions

import (
	"errors"
	"net/http"

	"github.com/relloyd/deltapipe/annotation"
	"github.com/relloyd/deltapipe/components"
	"github.com/relloyd/deltapipe/config"
	"github.com/relloyd/deltapipe/rdbms"
)

// StatusCodeForError maps the error kinds returned by a run to an HTTP status.
func StatusCodeForError(err error) int {
	var cfgErr *config.ConfigurationError
	var fetchErr *annotation.FetchError
	var connErr *rdbms.ConnectionError
	var writeErr *components.WriteError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr), errors.As(err, &connErr):
		return http.StatusBadGateway
	case errors.As(err, &writeErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
