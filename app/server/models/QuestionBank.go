package models

import "gorm.io/gorm"

type QuestionBank struct {
	gorm.Model

	Name        string  `gorm:"column:name"`
	Subject     Subject `gorm:"column:subject;index"`
	Category    string  `gorm:"column:category"`
	Subcategory string  `gorm:"column:subcategory"`
	Description string  `gorm:"column:description"`
	Color       string  `gorm:"column:color"`

	// 连接模型时使用
	Questions []Question `gorm:"many2many:question_bank_questions"`
}
