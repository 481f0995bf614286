package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"exam-prep-admin/app/server/types"
	"exam-prep-admin/app/server/utils"
)

// er 统一的错误出口：响应体只带状态码对应的标准文案，
// 绝不把存储层错误或堆栈细节透传给调用方（真实原因记在日志里）。
func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &types.ErrorMessage{
		Message: utils.P(http.StatusText(statusCode)),
	})
}
