package models

import "gorm.io/gorm"

const (
	ActorTypeAdmin   = "admin"
	ActorTypeStudent = "student"
)

// AuditLog 审计记录。写入是尽力而为的：业务操作不因审计失败而回滚。
type AuditLog struct {
	gorm.Model

	ActorID   uint   `gorm:"column:actor_id;index"`
	ActorType string `gorm:"column:actor_type"` // admin / student
	Action    string `gorm:"column:action"`     // 例如 account.create
	Detail    string `gorm:"column:detail"`
}
