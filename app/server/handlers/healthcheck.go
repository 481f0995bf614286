package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Healthcheck 探活接口，不需要认证
func (a *App) Healthcheck(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
