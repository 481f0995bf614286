package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// parsePagination 解析 page / limit 查询参数。
// 对外：第几页（从 1 开始）、每页多少条；对内：偏移页（从 0 开始）。
// page=0&limit=0 是特殊参数：展示全部。
func (a *App) parsePagination(c echo.Context) (showAll bool, page int, limit int) {
	pageRaw, pageErr := strconv.Atoi(c.QueryParam("page"))
	limitRaw, limitErr := strconv.Atoi(c.QueryParam("limit"))

	if pageErr == nil && pageRaw == 0 && limitErr == nil && limitRaw == 0 {
		return true, -1, -1
	}

	page = 0
	if pageErr == nil && pageRaw > 1 {
		page = pageRaw - 1
	}

	limit = 100 // 默认每页上限
	if limitErr == nil && limitRaw > 0 {
		limit = limitRaw
	}

	return false, page, limit
}

func (a *App) calcMaxPage(count int64, showAll bool, limit int) int64 {
	if showAll {
		return 1
	}

	pageMax := count / int64(limit)
	if (count % int64(limit)) != 0 {
		pageMax++
	}
	return pageMax
}
