package handlers

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes 注册全部后台路由。
// 角色限制不在这里做：每个 handler 自己调 authAdmin ，
// 保证「先鉴权、后查库」的顺序不被路由层改动破坏。
func RegisterRoutes(e *echo.Echo, a *App) {
	e.GET("/healthcheck", a.Healthcheck)

	g := e.Group("/api/admin")

	// 登录态
	g.POST("/login", a.AuthLogin)
	g.POST("/logout", a.AuthLogout)

	// 帐号管理
	g.GET("/accounts", a.AccountList)
	g.POST("/accounts", a.AccountCreate)
	g.GET("/accounts/self", a.AccountInfoGetSelf)
	g.POST("/accounts/promote", a.AccountPromote)
	g.DELETE("/accounts/:id", a.AccountDelete)
	g.POST("/accounts/:id/role", a.AccountRoleUpdate)
	g.POST("/accounts/:id/password", a.AccountPasswordUpdate)

	// 学员
	g.GET("/students", a.StudentList)
	g.POST("/bulk-import", a.StudentBulkImport)

	// 题目
	g.POST("/questions", a.QuestionCreate)
	g.GET("/questions", a.QuestionList)
	g.POST("/questions/bulk", a.QuestionBulkCreate)
	g.GET("/questions/analytics", a.QuestionAnalytics)
	g.GET("/questions/:id", a.QuestionInfoGet)
	g.PUT("/questions/:id", a.QuestionUpdate)
	g.DELETE("/questions/:id", a.QuestionDelete)

	// 题库
	g.POST("/question-banks", a.QuestionBankCreate)
	g.GET("/question-banks", a.QuestionBankList)
	g.GET("/question-banks/:id", a.QuestionBankInfoGet)
	g.DELETE("/question-banks/:id", a.QuestionBankDelete)

	// 上传
	g.POST("/upload", a.FileUpload)

	// 看板
	g.GET("/analytics/dashboard", a.DashboardAnalytics)
	g.GET("/analytics/student-growth", a.StudentGrowth)
	g.GET("/analytics/exam-distribution", a.ExamDistribution)

	// 通知
	g.GET("/notifications", a.NotificationList)
	g.POST("/notifications", a.NotificationCreate)

	// 审计
	g.GET("/audit-logs", a.AuditLogList)
}
