package handlers

import (
	"context"
	"io"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"exam-prep-admin/app/server/jwt"
)

// ObjectStore 上传接口需要的对象存储能力。
// 生产环境传 objstore.Client ，测试里用内存假实现替换。
type ObjectStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}

type App struct {
	l     *zap.Logger   // 日志
	db    *gorm.DB      // 数据库
	rdb   *redis.Client // Redis ，只做缓存
	jwt   *jwt.JWT      // JWT ，用于无状态会话
	store ObjectStore   // 对象存储，上传文件用

	secureCookie bool // 生产环境下会话 cookie 带 Secure 标记
}

func NewApp(l *zap.Logger, db *gorm.DB, rdb *redis.Client, j *jwt.JWT, store ObjectStore, secureCookie bool) *App {
	return &App{
		l:            l,
		db:           db,
		rdb:          rdb,
		jwt:          j,
		store:        store,
		secureCookie: secureCookie,
	}
}
