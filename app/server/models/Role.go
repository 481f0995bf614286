package models

import (
	"fmt"
	"strings"
)

// Role 是整个系统唯一的角色定义。所有授权判断都必须经过这个封闭集合，
// 禁止在 handler 里散落角色字符串字面量（大小写漂移会直接造成越权或拒权）。
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN" // 可以管理帐号（包括角色变更与删除）
	RoleAdmin      Role = "ADMIN"       // 可以管理题目、题库与上传
	RoleModerator  Role = "MODERATOR"   // 只读后台（看板、通知）
	RoleStudent    Role = "STUDENT"     // 学员，不允许进入后台
)

// ParseRole 把外部输入映射进封闭集合，大小写不敏感，集合外一律报错
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleSuperAdmin, RoleAdmin, RoleModerator, RoleStudent:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleModerator, RoleStudent:
		return true
	}
	return false
}

// IsStaff 是否为后台角色（可以出现在 Admin 表里的角色）
func (r Role) IsStaff() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleModerator:
		return true
	}
	return false
}
