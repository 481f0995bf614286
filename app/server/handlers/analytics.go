package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"exam-prep-admin/app/server/constants"
	"exam-prep-admin/app/server/models"
	"exam-prep-admin/app/server/types"
)

// cacheGet 从 Redis 取缓存的统计结果。未命中或反序列化失败都返回 false ，回源重算。
func (a *App) cacheGet(ctx context.Context, key string, out any) bool {
	raw, err := a.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			a.l.Warn("failed to read analytics cache", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		a.l.Warn("failed to decode analytics cache", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// cacheSet 写回缓存。失败只记日志，不影响响应。
func (a *App) cacheSet(ctx context.Context, key string, val any) {
	raw, err := json.Marshal(val)
	if err != nil {
		a.l.Warn("failed to encode analytics cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := a.rdb.Set(ctx, key, raw, constants.CacheExpireAnalytics).Err(); err != nil {
		a.l.Warn("failed to write analytics cache", zap.String("key", key), zap.Error(err))
	}
}

func (a *App) DashboardAnalytics(c echo.Context) error {
	// 抓取 user 信息（认证）
	_, err, statusCode := a.authAdmin(c, staffRoles()...)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var res types.DashboardAnalytics
	if a.cacheGet(rctx, constants.CacheKeyDashboardAnalytics, &res) {
		return c.JSON(http.StatusOK, &res)
	}

	if err := a.db.WithContext(rctx).Model(&models.Exam{}).Count(&res.TotalExams).Error; err != nil {
		a.l.Error("failed to count exams", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Model(&models.Student{}).Count(&res.TotalStudents).Error; err != nil {
		a.l.Error("failed to count students", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	weekAgo := time.Now().AddDate(0, 0, -7)
	if err := a.db.WithContext(rctx).Model(&models.ExamAttempt{}).
		Where("created_at >= ?", weekAgo).
		Count(&res.RecentEnrollments).Error; err != nil {
		a.l.Error("failed to count recent enrollments", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Model(&models.Admin{}).
		Where("role <> ?", models.RoleModerator).
		Count(&res.ActiveAdmins).Error; err != nil {
		a.l.Error("failed to count admins", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.cacheSet(rctx, constants.CacheKeyDashboardAnalytics, &res)

	return c.JSON(http.StatusOK, &res)
}

// StudentGrowth 最近 7 个月每月新增学员数，含没有新增的月份（补 0）
func (a *App) StudentGrowth(c echo.Context) error {
	// 抓取 user 信息（认证）
	_, err, statusCode := a.authAdmin(c, staffRoles()...)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var res []types.GrowthPoint
	if a.cacheGet(rctx, constants.CacheKeyStudentGrowth, &res) {
		return c.JSON(http.StatusOK, res)
	}

	now := time.Now()
	res = make([]types.GrowthPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		var count int64
		if err := a.db.WithContext(rctx).Model(&models.Student{}).
			Where("created_at >= ? AND created_at < ?", monthStart, monthEnd).
			Count(&count).Error; err != nil {
			a.l.Error("failed to count student growth", zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}

		res = append(res, types.GrowthPoint{
			Date:     fmt.Sprintf("%02d", int(monthStart.Month())),
			Students: count,
		})
	}

	a.cacheSet(rctx, constants.CacheKeyStudentGrowth, res)

	return c.JSON(http.StatusOK, res)
}

// ExamDistribution 各科目的考试数量分布（看板饼图用）
func (a *App) ExamDistribution(c echo.Context) error {
	// 抓取 user 信息（认证）
	_, err, statusCode := a.authAdmin(c, staffRoles()...)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var res []types.DistributionSlice
	if a.cacheGet(rctx, constants.CacheKeyExamDistribution, &res) {
		return c.JSON(http.StatusOK, res)
	}

	if err := a.db.WithContext(rctx).Model(&models.Exam{}).
		Select("subject AS name, COUNT(*) AS value").
		Group("subject").
		Order("value DESC").
		Scan(&res).Error; err != nil {
		a.l.Error("failed to get exam distribution", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if res == nil {
		res = []types.DistributionSlice{}
	}

	a.cacheSet(rctx, constants.CacheKeyExamDistribution, res)

	return c.JSON(http.StatusOK, res)
}
