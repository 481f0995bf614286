package models

import "gorm.io/gorm"

// 考试科目
type Subject string

const (
	SubjectCAT         Subject = "CAT"
	SubjectJEEMain     Subject = "JEE_MAIN"
	SubjectJEEAdvanced Subject = "JEE_ADVANCED"
	SubjectNEET        Subject = "NEET"
	SubjectGATE        Subject = "GATE"
)

func (s Subject) Valid() bool {
	switch s {
	case SubjectCAT, SubjectJEEMain, SubjectJEEAdvanced, SubjectNEET, SubjectGATE:
		return true
	}
	return false
}

// 题目难度
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
	DifficultyExpert Difficulty = "EXPERT"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert:
		return true
	}
	return false
}

// 题型
type QuestionType string

const (
	QuestionTypeMCQSingle   QuestionType = "MCQ_SINGLE"
	QuestionTypeMCQMulti    QuestionType = "MCQ_MULTI"
	QuestionTypeNumeric     QuestionType = "NUMERIC"
	QuestionTypeDescriptive QuestionType = "DESCRIPTIVE"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMCQSingle, QuestionTypeMCQMulti, QuestionTypeNumeric, QuestionTypeDescriptive:
		return true
	}
	return false
}

type Question struct {
	gorm.Model

	// 题干
	Content       string       `gorm:"column:content"`
	QuestionImage string       `gorm:"column:question_image"` // 题干配图的对象存储 key ，可为空
	QuestionType  QuestionType `gorm:"column:question_type"`

	// 选项与答案
	Options          []string `gorm:"column:options;serializer:json"`       // 选项文本，非选择题为空
	OptionImages     []string `gorm:"column:option_images;serializer:json"` // 选项配图，与 Options 一一对应
	CorrectAnswer    string   `gorm:"column:correct_answer"`
	Explanation      string   `gorm:"column:explanation"`
	ExplanationImage string   `gorm:"column:explanation_image"`

	// 分类
	Subject     Subject    `gorm:"column:subject;index"`
	Category    string     `gorm:"column:category"`
	Subcategory string     `gorm:"column:subcategory"`
	Difficulty  Difficulty `gorm:"column:difficulty;index"`

	// 作答预估时长（秒）
	EstimatedTime int `gorm:"column:estimated_time"`

	// 创建人（ Admin ID ）
	CreatedByID uint `gorm:"column:created_by_id;index"`

	// 连接模型时使用
	Tags []Tag `gorm:"many2many:question_tags"`
}
