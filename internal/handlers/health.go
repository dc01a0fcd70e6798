package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports liveness only; it checks no dependencies.
func Health(serviceName string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": serviceName,
		})
	}
}
