package config

type Config struct {
	System struct {
		IsProd                bool   // 是否为生产环境（影响日志格式与 cookie 的 Secure 标记）
		Listen                string // 监听地址
		DBConnectionString    string // Postgres 数据库的连接字符串
		RedisConnectionString string // Redis 数据库的连接字符串
	}
	Security struct {
		SignatureSecretKey string // 签名密钥，用于产生 JWT ，更新会导致旧有会话失效
	}
	ObjectStorage struct {
		Endpoint  string // MinIO / S3 兼容端点
		AccessKey string
		SecretKey string
		Bucket    string
		UseSSL    bool
	}
	Bootstrap struct {
		AdminEmail    string // 首次启动时种子超级管理员的邮箱
		AdminPassword string // 首次启动时种子超级管理员的密码
	}
}
