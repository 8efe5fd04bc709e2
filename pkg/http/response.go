package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SuccessResponse writes a success envelope without pagination.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Data: data, Success: true})
}

// FailureResponse writes a failure envelope. Data is an empty slice so
// consumers can always range over it.
func FailureResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Data: []interface{}{}, Success: false, Message: message})
}

// BadRequestResponse writes a 400 failure with the first validation message.
func BadRequestResponse(c echo.Context, verrs interface{}) error {
	if list, ok := verrs.([]ValidationError); ok && len(list) > 0 {
		return FailureResponse(c, http.StatusBadRequest, list[0].Message)
	}
	return FailureResponse(c, http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
}

// AppErrorResponse writes a failure envelope from an application error.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return FailureResponse(c, appErr.Status, appErr.Message)
	}
	return FailureResponse(c, http.StatusInternalServerError, "Something went wrong")
}
