package models

import "gorm.io/gorm"

type Admin struct {
	gorm.Model

	// 基础信息
	Username string `gorm:"column:username"`          // 显示名，未提供时取邮箱 @ 前的部分
	Email    string `gorm:"column:email;uniqueIndex"` // 登录邮箱，统一小写存储，全局唯一

	// 登录与授权认证相关
	Password string `gorm:"column:password"` // 密码，使用 argon2id 储存
	Role     Role   `gorm:"column:role"`     // 后台角色，只允许 IsStaff 的取值
}
