package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"exam-prep-admin/app/server/models"
	"exam-prep-admin/app/server/types"
)

// audit 追加一条审计记录。尽力而为：写入失败只记日志，不影响业务请求的结果。
func (a *App) audit(ctx context.Context, actorID uint, actorType string, action string, detail string) {
	if err := a.db.WithContext(ctx).Create(&models.AuditLog{
		ActorID:   actorID,
		ActorType: actorType,
		Action:    action,
		Detail:    detail,
	}).Error; err != nil {
		a.l.Error("failed to write audit log",
			zap.Uint("actorID", actorID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func (a *App) AuditLogList(c echo.Context) error {
	// 抓取 user 信息（认证）
	_, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 最近 100 条
	var logs []models.AuditLog
	if err := a.db.WithContext(rctx).
		Order("created_at DESC").
		Limit(100).
		Find(&logs).Error; err != nil {
		a.l.Error("failed to get audit logs", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 按操作者类型分批关联出用户名和邮箱，避免每条日志各查一次
	var adminIDs, studentIDs []uint
	for _, log := range logs {
		switch log.ActorType {
		case models.ActorTypeAdmin:
			adminIDs = append(adminIDs, log.ActorID)
		case models.ActorTypeStudent:
			studentIDs = append(studentIDs, log.ActorID)
		}
	}

	adminByID := map[uint]models.Admin{}
	if len(adminIDs) > 0 {
		var admins []models.Admin
		if err := a.db.WithContext(rctx).Find(&admins, "id IN ?", adminIDs).Error; err != nil {
			a.l.Error("failed to get audit log admins", zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
		for _, admin := range admins {
			adminByID[admin.ID] = admin
		}
	}

	studentByID := map[uint]models.Student{}
	if len(studentIDs) > 0 {
		var students []models.Student
		if err := a.db.WithContext(rctx).Find(&students, "id IN ?", studentIDs).Error; err != nil {
			a.l.Error("failed to get audit log students", zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
		for _, student := range students {
			studentByID[student.ID] = student
		}
	}

	resLogs := []types.AuditLogInfo{}
	for _, log := range logs {
		info := types.AuditLogInfo{
			Id:        &log.ID,
			ActorId:   &log.ActorID,
			ActorType: &log.ActorType,
			Action:    &log.Action,
			Detail:    &log.Detail,
			CreatedAt: &log.CreatedAt,
		}
		switch log.ActorType {
		case models.ActorTypeAdmin:
			if admin, ok := adminByID[log.ActorID]; ok {
				info.Username = &admin.Username
				info.Email = &admin.Email
			}
		case models.ActorTypeStudent:
			if student, ok := studentByID[log.ActorID]; ok {
				info.Username = &student.Username
				info.Email = &student.Email
			}
		}
		resLogs = append(resLogs, info)
	}

	return c.JSON(http.StatusOK, resLogs)
}
