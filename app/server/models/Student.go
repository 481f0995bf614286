package models

import "gorm.io/gorm"

// Student 学员帐号。角色固定为 STUDENT ，不单独存列；
// 晋升为后台帐号时会把这条记录整体搬进 Admin 表（见帐号晋升接口）。
type Student struct {
	gorm.Model

	Username string `gorm:"column:username"`
	Email    string `gorm:"column:email;uniqueIndex"` // 登录邮箱，统一小写存储
	Password string `gorm:"column:password"`          // 密码，使用 argon2id 储存
}
