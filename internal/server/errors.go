package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	metricdomain "github.com/roomledger/roomledger/internal/metric/domain"
)

// Error taxonomy surfaced to API clients.
const (
	errTypeValidation   = "validation_error"
	errTypeConflict     = "conflict"
	errTypeNotFound     = "not_found"
	errTypeUnauthorized = "unauthorized"
	errTypeBadRequest   = "bad_request"
	errTypeInternal     = "internal_error"
)

var (
	errMissingActor = errors.New("missing X-Actor-Id header")
	errBadActor     = errors.New("malformed X-Actor-Id header")
)

// badRequestError carries a client-caused parse failure with its message.
type badRequestError struct {
	message string
}

func (e *badRequestError) Error() string { return e.message }

type errorBody struct {
	Type    string                    `json:"type"`
	Message string                    `json:"message"`
	Errors  []metricdomain.FieldError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// AbortWithError records the error on the gin context and stops the handler
// chain; the error middleware renders the response.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandlingMiddleware renders the last recorded error as a JSON envelope
// unless a handler already wrote a response.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		lastErr := c.Errors.Last()
		if lastErr == nil || c.Writer.Written() {
			return
		}

		status, body := mapError(lastErr.Err)
		c.JSON(status, errorResponse{Error: body})
	}
}

func mapError(err error) (int, errorBody) {
	var validationErr *metricdomain.ValidationFailedError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, errorBody{
			Type:    errTypeValidation,
			Message: "one or more fields failed validation",
			Errors:  validationErr.Errors,
		}
	}

	var badReq *badRequestError
	if errors.As(err, &badReq) {
		return http.StatusBadRequest, errorBody{
			Type:    errTypeBadRequest,
			Message: badReq.message,
		}
	}

	switch {
	case errors.Is(err, metricdomain.ErrDuplicateRecord),
		errors.Is(err, metricdomain.ErrUnknownCreator):
		return http.StatusConflict, errorBody{
			Type:    errTypeConflict,
			Message: err.Error(),
		}
	case errors.Is(err, metricdomain.ErrRecordNotFound):
		return http.StatusNotFound, errorBody{
			Type:    errTypeNotFound,
			Message: err.Error(),
		}
	case errors.Is(err, errMissingActor), errors.Is(err, errBadActor):
		return http.StatusUnauthorized, errorBody{
			Type:    errTypeUnauthorized,
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorBody{
		Type:    errTypeInternal,
		Message: "internal server error",
	}
}

// classifyErrorForLog labels request-log entries without leaking internals.
func classifyErrorForLog(err error) (string, string) {
	status, body := mapError(err)
	return body.Type, http.StatusText(status)
}
