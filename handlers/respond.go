package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// errorResponse is the JSON error envelope shared by all handlers.
type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps service errors onto HTTP statuses: validation failures
// are 400, missing records 404 and state machine violations 409. Anything
// unrecognized is a 500 with a generic message so internals do not leak.
func respondError(e *core.RequestEvent, err error) error {
	switch {
	case services.IsValidation(err):
		return e.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case services.IsNotFound(err):
		return e.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case services.IsInvalidTransition(err):
		return e.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		return e.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
