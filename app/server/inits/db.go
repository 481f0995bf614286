package inits

import (
	"fmt"

	"github.com/alexedwards/argon2id"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"exam-prep-admin/app/server/models"
	"exam-prep-admin/app/server/utils"
)

func DB(conn string, bootstrapAdminEmail, bootstrapAdminPassword string) (db *gorm.DB, err error) {
	// 打开连接
	if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 初始化启动数据
	if err = initData(db, bootstrapAdminEmail, bootstrapAdminPassword); err != nil {
		return nil, fmt.Errorf("failed to init data into database: %w", err)
	}

	// 返回
	return db, nil
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.Student{},
		&models.Tag{},
		&models.Question{},
		&models.QuestionBank{},
		&models.Exam{},
		&models.ExamAttempt{},
		&models.AuditLog{},
		&models.Notification{},
		&models.UploadedFile{},
	)
}

func initData(db *gorm.DB, adminEmail, adminPassword string) (err error) {
	// 查询现有记录数量
	var counter int64

	// 初始化超级管理员：一个都没有的系统无法登录，也无法创建别的帐号
	if err = db.Model(&models.Admin{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get admin count: %w", err)
	} else if counter == 0 {
		// 创建密码
		var password string
		if password, err = argon2id.CreateHash(adminPassword, argon2id.DefaultParams); err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}

		email := utils.NormalizeEmail(adminEmail)

		// 插入记录
		if err = db.Create(&models.Admin{
			Username: utils.UsernameFromEmail(email),
			Email:    email,
			Password: password,
			Role:     models.RoleSuperAdmin,
		}).Error; err != nil {
			return fmt.Errorf("failed to create bootstrap super admin: %w", err)
		}
	}

	// 初始化标签
	if err = db.Model(&models.Tag{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get tag count: %w", err)
	} else if counter == 0 {
		if err = db.Create([]*models.Tag{
			{Name: "algebra", Color: "#FF6B6B"},
			{Name: "geometry", Color: "#4ECDC4"},
			{Name: "calculus", Color: "#45B7D1"},
			{Name: "physics", Color: "#96CEB4"},
			{Name: "chemistry", Color: "#FFEAA7"},
			{Name: "biology", Color: "#DDA0DD"},
			{Name: "reasoning", Color: "#98D8C8"},
			{Name: "verbal", Color: "#F7DC6F"},
			{Name: "quantitative", Color: "#BB8FCE"},
			{Name: "basic", Color: "#85C1E9"},
			{Name: "intermediate", Color: "#F8C471"},
			{Name: "advanced", Color: "#EC7063"},
		}).Error; err != nil {
			return fmt.Errorf("failed to create initial tags: %w", err)
		}
	}

	// 初始化题库
	if err = db.Model(&models.QuestionBank{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get question bank count: %w", err)
	} else if counter == 0 {
		if err = db.Create([]*models.QuestionBank{
			{Name: "CAT Quantitative Ability", Subject: models.SubjectCAT, Category: "Quantitative Ability"},
			{Name: "CAT Verbal Ability", Subject: models.SubjectCAT, Category: "Verbal Ability"},
			{Name: "CAT Data Interpretation", Subject: models.SubjectCAT, Category: "Data Interpretation & Logical Reasoning"},
			{Name: "JEE Physics", Subject: models.SubjectJEEMain, Category: "Physics"},
			{Name: "JEE Chemistry", Subject: models.SubjectJEEMain, Category: "Chemistry"},
			{Name: "JEE Mathematics", Subject: models.SubjectJEEMain, Category: "Mathematics"},
		}).Error; err != nil {
			return fmt.Errorf("failed to create initial question banks: %w", err)
		}
	}

	// 已有数据或全部导入成功
	return nil
}
