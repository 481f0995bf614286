package models

import "gorm.io/gorm"

type Exam struct {
	gorm.Model

	Name        string  `gorm:"column:name"`
	Subject     Subject `gorm:"column:subject;index"`
	Description string  `gorm:"column:description"`
	TotalTime   int     `gorm:"column:total_time"` // 总时长（分钟）
	CreatedByID uint    `gorm:"column:created_by_id;index"`
}

// ExamAttempt 学员的一次报名/作答，看板统计用
type ExamAttempt struct {
	gorm.Model

	ExamID    uint `gorm:"column:exam_id;index"`
	StudentID uint `gorm:"column:student_id;index"`
}
