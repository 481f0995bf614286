// Package types 定义后台 API 的请求与响应结构。
// 请求结构用指针字段区分「未提供」与「零值」；响应沿用同样的形状。
package types

import "time"

type ErrorMessage struct {
	Message *string `json:"message,omitempty"`
}

// ---- 登录 ----

type LoginRequest struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

type LoginResponse struct {
	Id    *uint   `json:"id,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

// ---- 帐号 ----

type AccountInfo struct {
	Id        *uint      `json:"id,omitempty"`
	Username  *string    `json:"username,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Role      *string    `json:"role,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type AccountCreateRequest struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Username *string `json:"username,omitempty"` // 缺省时取邮箱 @ 前缀
	Role     *string `json:"role,omitempty"`     // 缺省为 ADMIN
}

type AccountRoleUpdateRequest struct {
	Role *string `json:"role,omitempty"`
}

type AccountPasswordUpdateRequest struct {
	Password *string `json:"password,omitempty"`
}

type AccountPromoteRequest struct {
	StudentId *uint   `json:"studentId,omitempty"`
	Role      *string `json:"role,omitempty"` // 缺省为 ADMIN
}

type AccountListResponse struct {
	Limit   *int           `json:"limit,omitempty"`
	PageMax *int64         `json:"pageMax,omitempty"`
	List    *[]AccountInfo `json:"list,omitempty"`
}

type StudentInfo struct {
	Id        *uint      `json:"id,omitempty"`
	Username  *string    `json:"username,omitempty"`
	Email     *string    `json:"email,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type StudentListResponse struct {
	Limit   *int           `json:"limit,omitempty"`
	PageMax *int64         `json:"pageMax,omitempty"`
	List    *[]StudentInfo `json:"list,omitempty"`
}

// ---- 题目 ----

type QuestionInput struct {
	Content          *string   `json:"content,omitempty"`
	QuestionImage    *string   `json:"questionImage,omitempty"`
	QuestionType     *string   `json:"questionType,omitempty"`
	Options          *[]string `json:"options,omitempty"`
	OptionImages     *[]string `json:"optionImages,omitempty"`
	CorrectAnswer    *string   `json:"correctAnswer,omitempty"`
	Explanation      *string   `json:"explanation,omitempty"`
	ExplanationImage *string   `json:"explanationImage,omitempty"`
	Subject          *string   `json:"subject,omitempty"`
	Category         *string   `json:"category,omitempty"`
	Subcategory      *string   `json:"subcategory,omitempty"`
	Difficulty       *string   `json:"difficulty,omitempty"`
	EstimatedTime    *int      `json:"estimatedTime,omitempty"`
	Tags             *[]string `json:"tags,omitempty"`
	AssignToBank     *bool     `json:"assignToBank,omitempty"` // 按科目+分类挂进已有题库
}

type QuestionInfo struct {
	Id               *uint     `json:"id,omitempty"`
	Content          *string   `json:"content,omitempty"`
	QuestionImage    *string   `json:"questionImage,omitempty"`
	QuestionType     *string   `json:"questionType,omitempty"`
	Options          *[]string `json:"options,omitempty"`
	OptionImages     *[]string `json:"optionImages,omitempty"`
	CorrectAnswer    *string   `json:"correctAnswer,omitempty"`
	Explanation      *string   `json:"explanation,omitempty"`
	ExplanationImage *string   `json:"explanationImage,omitempty"`
	Subject          *string   `json:"subject,omitempty"`
	Category         *string   `json:"category,omitempty"`
	Subcategory      *string   `json:"subcategory,omitempty"`
	Difficulty       *string   `json:"difficulty,omitempty"`
	EstimatedTime    *int      `json:"estimatedTime,omitempty"`
	Tags             *[]string `json:"tags,omitempty"`
	CreatedById      *uint     `json:"createdById,omitempty"`
}

type QuestionListResponse struct {
	Limit   *int            `json:"limit,omitempty"`
	PageMax *int64          `json:"pageMax,omitempty"`
	List    *[]QuestionInfo `json:"list,omitempty"`
}

type QuestionBulkCreateRequest struct {
	Questions *[]QuestionInput `json:"questions,omitempty"`
}

type QuestionBulkCreateResponse struct {
	Count *int `json:"count,omitempty"`
}

// QuestionAnalytics 题目分布统计（建题页的侧栏图表用）
type QuestionAnalytics struct {
	Total        int64            `json:"total"`
	BySubject    map[string]int64 `json:"bySubject"`
	ByDifficulty map[string]int64 `json:"byDifficulty"`
}

// ---- 题库 ----

type QuestionBankInput struct {
	Name        *string `json:"name,omitempty"`
	Subject     *string `json:"subject,omitempty"`
	Category    *string `json:"category,omitempty"`
	Subcategory *string `json:"subcategory,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

type QuestionBankInfo struct {
	Id            *uint   `json:"id,omitempty"`
	Name          *string `json:"name,omitempty"`
	Subject       *string `json:"subject,omitempty"`
	Category      *string `json:"category,omitempty"`
	Subcategory   *string `json:"subcategory,omitempty"`
	Description   *string `json:"description,omitempty"`
	Color         *string `json:"color,omitempty"`
	QuestionCount *int64  `json:"questionCount,omitempty"`
}

type QuestionBankListResponse struct {
	Limit   *int                `json:"limit,omitempty"`
	PageMax *int64              `json:"pageMax,omitempty"`
	List    *[]QuestionBankInfo `json:"list,omitempty"`
}

// ---- CSV 批量导入 ----

type ImportRowResult struct {
	Email  string `json:"email"`
	Status string `json:"status"` // created / duplicate / error
}

type ImportResponse struct {
	Results []ImportRowResult `json:"results"`
}

// ---- 上传 ----

type UploadResponse struct {
	Id           *uint   `json:"id,omitempty"`
	ObjectKey    *string `json:"objectKey,omitempty"`
	OriginalName *string `json:"originalName,omitempty"`
	FileSize     *int64  `json:"fileSize,omitempty"`
	MimeType     *string `json:"mimeType,omitempty"`
	QuestionId   *uint   `json:"questionId,omitempty"`
}

// ---- 审计 ----

type AuditLogInfo struct {
	Id        *uint      `json:"id,omitempty"`
	ActorId   *uint      `json:"actorId,omitempty"`
	ActorType *string    `json:"actorType,omitempty"`
	Username  *string    `json:"username,omitempty"` // 查询时按 ActorType 关联出来
	Email     *string    `json:"email,omitempty"`
	Action    *string    `json:"action,omitempty"`
	Detail    *string    `json:"detail,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// ---- 看板 ----

type DashboardAnalytics struct {
	TotalExams        int64 `json:"totalExams"`
	TotalStudents     int64 `json:"totalStudents"`
	RecentEnrollments int64 `json:"recentEnrollments"` // 最近 7 天的报名数
	ActiveAdmins      int64 `json:"activeAdmins"`      // 非 MODERATOR 的后台帐号数
}

type GrowthPoint struct {
	Date     string `json:"date"` // 月份，MM
	Students int64  `json:"students"`
}

type DistributionSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// ---- 通知 ----

type NotificationInput struct {
	Title  *string `json:"title,omitempty"`
	Body   *string `json:"body,omitempty"`
	UserId *uint   `json:"userId,omitempty"`
}

type NotificationInfo struct {
	Id        *uint      `json:"id,omitempty"`
	Title     *string    `json:"title,omitempty"`
	Body      *string    `json:"body,omitempty"`
	UserId    *uint      `json:"userId,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}
