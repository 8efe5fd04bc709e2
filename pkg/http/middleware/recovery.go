package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "TrendBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover returns recovery middleware writing a failure envelope on panic.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					if l != nil {
						l.Error("panic recovered",
							applogger.Error(err),
							applogger.String("stack", string(debug.Stack())),
						)
					}
					_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
						"data":    []interface{}{},
						"success": false,
						"message": "Internal Server Error",
					})
				}
			}()
			return next(c)
		}
	}
}
