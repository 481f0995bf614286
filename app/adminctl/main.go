// adminctl 维护后台的引导超级管理员。
// 部署后首次初始化，或者管理员把自己锁在门外时重置密码，都走这里，
// 不提供任何 HTTP 形式的重置入口。
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/alexedwards/argon2id"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"exam-prep-admin/app/server/models"
	"exam-prep-admin/app/server/utils"
)

func main() {
	email := flag.String("email", "admin@example.com", "超级管理员邮箱")
	password := flag.String("password", "", "要设置的密码，必填")
	reset := flag.Bool("reset", false, "帐号已存在时重置其密码并恢复 SUPER_ADMIN 角色")
	flag.Parse()

	if *password == "" {
		log.Fatal("password is required")
	}

	_ = godotenv.Load()
	conn, exist := os.LookupEnv("DB_CONN")
	if !exist {
		log.Fatal("DB_CONN environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(conn), &gorm.Config{})
	if err != nil {
		log.Fatal(fmt.Errorf("failed to connect to database: %w", err))
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		log.Fatal(fmt.Errorf("failed to migrate database: %w", err))
	}

	normalized := utils.NormalizeEmail(*email)
	passwordHash, err := argon2id.CreateHash(*password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal(fmt.Errorf("failed to hash password: %w", err))
	}

	var admin models.Admin
	err = db.First(&admin, "email = ?", normalized).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.Create(&models.Admin{
			Username: utils.UsernameFromEmail(normalized),
			Email:    normalized,
			Password: passwordHash,
			Role:     models.RoleSuperAdmin,
		}).Error; err != nil {
			log.Fatal(fmt.Errorf("failed to create super admin: %w", err))
		}
		log.Printf("created super admin %s", normalized)

	case err != nil:
		log.Fatal(fmt.Errorf("failed to look up admin: %w", err))

	default:
		if !*reset {
			log.Fatalf("admin %s already exists, pass -reset to overwrite its password", normalized)
		}
		if err := db.Model(&admin).Updates(map[string]any{
			"password": passwordHash,
			"role":     models.RoleSuperAdmin,
		}).Error; err != nil {
			log.Fatal(fmt.Errorf("failed to reset admin: %w", err))
		}
		log.Printf("reset super admin %s", normalized)
	}
}
