package models

import "gorm.io/gorm"

type Tag struct {
	gorm.Model

	Name  string `gorm:"column:name;uniqueIndex"` // 标签名，全局唯一
	Color string `gorm:"column:color"`            // 前端展示用的色值
}
