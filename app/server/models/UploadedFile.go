package models

import "gorm.io/gorm"

type UploadedFile struct {
	gorm.Model

	OriginalName string `gorm:"column:original_name"`
	ObjectKey    string `gorm:"column:object_key;uniqueIndex"` // 对象存储里的 key
	FileSize     int64  `gorm:"column:file_size"`
	MimeType     string `gorm:"column:mime_type"`
	UploadedByID uint   `gorm:"column:uploaded_by_id;index"`
	QuestionID   *uint  `gorm:"column:question_id;index"` // 关联题目，NULL 表示暂未挂载
}
