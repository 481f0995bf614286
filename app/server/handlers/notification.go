package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"exam-prep-admin/app/server/models"
	"exam-prep-admin/app/server/types"
)

func notificationInfo(n *models.Notification) types.NotificationInfo {
	return types.NotificationInfo{
		Id:        &n.ID,
		Title:     &n.Title,
		Body:      &n.Body,
		UserId:    n.UserID,
		CreatedAt: &n.CreatedAt,
	}
}

func (a *App) NotificationList(c echo.Context) error {
	// 抓取 user 信息（认证）
	_, err, statusCode := a.authAdmin(c, staffRoles()...)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 最近 10 条
	var notifications []models.Notification
	if err := a.db.WithContext(rctx).
		Order("created_at DESC").
		Limit(10).
		Find(&notifications).Error; err != nil {
		a.l.Error("failed to get notifications", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	res := []types.NotificationInfo{}
	for i := range notifications {
		res = append(res, notificationInfo(&notifications[i]))
	}

	return c.JSON(http.StatusOK, res)
}

func (a *App) NotificationCreate(c echo.Context) error {
	// 抓取 user 信息（认证）
	authUser, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin, models.RoleAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.NotificationInput
	if err = c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if req.Title == nil || *req.Title == "" {
		return a.er(c, http.StatusBadRequest)
	}

	notification := models.Notification{
		Title:  *req.Title,
		UserID: req.UserId, // nil 表示广播
	}
	if req.Body != nil {
		notification.Body = *req.Body
	}

	if err := a.db.WithContext(rctx).Create(&notification).Error; err != nil {
		a.l.Error("failed to create notification", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.audit(rctx, authUser.ID, models.ActorTypeAdmin, "notification.create", fmt.Sprintf("id=%d %s", notification.ID, notification.Title))

	info := notificationInfo(&notification)
	return c.JSON(http.StatusCreated, &info)
}
