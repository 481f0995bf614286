package handlers

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// parseIDParam 从路径参数里取 :id
func parseIDParam(c echo.Context) (uint, error) {
	return parseID(c.Param("id"))
}

func parseID(s string) (uint, error) {
	idUint64, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %w", err)
	}
	return uint(idUint64), nil
}
