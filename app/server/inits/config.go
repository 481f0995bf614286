package inits

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"exam-prep-admin/app/server/config"
)

func Config() (*config.Config, error) {
	// 本地开发时从 .env 读取，文件不存在就只用进程环境变量
	_ = godotenv.Load()

	var cfg config.Config

	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	// 缺失签名密钥是配置错误：宁可拒绝启动也不签出无签名的 token
	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	if endpoint, exist := os.LookupEnv("MINIO_ENDPOINT"); !exist {
		return nil, fmt.Errorf("MINIO_ENDPOINT environment variable not set")
	} else {
		cfg.ObjectStorage.Endpoint = endpoint
	}

	if accessKey, exist := os.LookupEnv("MINIO_ACCESS_KEY"); !exist {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY environment variable not set")
	} else {
		cfg.ObjectStorage.AccessKey = accessKey
	}

	if secretKey, exist := os.LookupEnv("MINIO_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("MINIO_SECRET_KEY environment variable not set")
	} else {
		cfg.ObjectStorage.SecretKey = secretKey
	}

	if bucket, exist := os.LookupEnv("MINIO_BUCKET"); !exist {
		cfg.ObjectStorage.Bucket = "exam-prep-admin"
	} else {
		cfg.ObjectStorage.Bucket = bucket
	}

	{
		useSSL, exist := os.LookupEnv("MINIO_USE_SSL")
		cfg.ObjectStorage.UseSSL = exist && strings.EqualFold(useSSL, "true")
	}

	if adminEmail, exist := os.LookupEnv("BOOTSTRAP_ADMIN_EMAIL"); !exist {
		cfg.Bootstrap.AdminEmail = "admin@example.com"
	} else {
		cfg.Bootstrap.AdminEmail = adminEmail
	}

	if adminPassword, exist := os.LookupEnv("BOOTSTRAP_ADMIN_PASSWORD"); !exist {
		cfg.Bootstrap.AdminPassword = "admin123" // 仅作开发默认值，生产部署必须覆盖
	} else {
		cfg.Bootstrap.AdminPassword = adminPassword
	}

	return &cfg, nil
}
