package models

import "gorm.io/gorm"

type Notification struct {
	gorm.Model

	Title  string `gorm:"column:title"`
	Body   string `gorm:"column:body"`
	UserID *uint  `gorm:"column:user_id;index"` // 指定接收者，NULL 表示广播
}
