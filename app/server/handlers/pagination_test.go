package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func paginationContext(query string) echo.Context {
	req := httptest.NewRequest("GET", "/?"+query, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestParsePagination(t *testing.T) {
	a := newTestApp(t)

	// 无参数：第一页，默认上限
	showAll, page, limit := a.parsePagination(paginationContext(""))
	assert.False(t, showAll)
	assert.Equal(t, 0, page)
	assert.Equal(t, 100, limit)

	// 对外从 1 开始，对内偏移页从 0 开始
	showAll, page, limit = a.parsePagination(paginationContext("page=3&limit=20"))
	assert.False(t, showAll)
	assert.Equal(t, 2, page)
	assert.Equal(t, 20, limit)

	// page=0&limit=0 表示全部
	showAll, _, _ = a.parsePagination(paginationContext("page=0&limit=0"))
	assert.True(t, showAll)

	// 非法参数按缺省处理
	showAll, page, limit = a.parsePagination(paginationContext("page=banana&limit=-5"))
	assert.False(t, showAll)
	assert.Equal(t, 0, page)
	assert.Equal(t, 100, limit)
}

func TestCalcMaxPage(t *testing.T) {
	a := newTestApp(t)

	assert.EqualValues(t, 1, a.calcMaxPage(1000, true, -1)) // 全部展示时只有一页
	assert.EqualValues(t, 3, a.calcMaxPage(5, false, 2))
	assert.EqualValues(t, 2, a.calcMaxPage(4, false, 2))
	assert.EqualValues(t, 0, a.calcMaxPage(0, false, 10))
}
