package apperrors

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error is an application error carrying the HTTP status it maps to.
// Handlers return these; the centralized error handler shapes the response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation signals a missing or malformed required field (400)
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// NotFound signals that no matching document exists (404)
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// DomainRule signals a violated business rule, e.g. self-repost (400)
func DomainRule(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Conflict signals a duplicate resource (409)
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// Upload signals a media delegate failure (500)
func Upload(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

// HTTPErrorHandler funnels every handler error into the
// {success:false, message} envelope with the mapped status.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status = appErr.Status
		message = appErr.Message
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	default:
		log.Printf("ERROR: unhandled error: %v", err)
	}

	if jsonErr := c.JSON(status, echo.Map{"success": false, "message": message}); jsonErr != nil {
		log.Printf("ERROR: failed to write error response: %v", jsonErr)
	}
}
