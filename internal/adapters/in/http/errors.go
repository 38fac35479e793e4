package http

import (
	"errors"
	"net/http"

	"grouporder/internal/core/application/usecases/commands"
	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body for every non-2xx response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusCodeFor maps domain and application errors to HTTP status codes.
// Lost optimistic version checks map to 409 so clients retry the request; a
// group order past its TTL maps to 410 to distinguish "gone for good" from
// plain conflicts.
func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, grouporder.ErrParticipantNotFound):
		return http.StatusNotFound
	case errors.Is(err, grouporder.ErrGroupOrderExpired):
		return http.StatusGone
	case errors.Is(err, grouporder.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, grouporder.ErrGroupOrderNotJoinable),
		errors.Is(err, grouporder.ErrGroupOrderLocked),
		errors.Is(err, grouporder.ErrGroupOrderClosed),
		errors.Is(err, grouporder.ErrGroupOrderNotReady),
		errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, grouporder.ErrEmptyContribution),
		errors.Is(err, grouporder.ErrNothingToFinalize):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrTTLIsInvalid),
		errors.Is(err, commands.ErrInitialBudgetIsInvalid),
		errors.Is(err, commands.ErrChipInAmountIsInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status code with the error message.
// Internal errors keep their details out of the response body.
func respondError(c echo.Context, err error) error {
	code := statusCodeFor(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}

	return c.JSON(code, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
