package constants

import "time"

const (
	// 会话 cookie 名称，登录时写入，登出时清除
	AuthCookieName = "admin_token"

	// token 有效期，cookie 的 Max-Age 与之保持一致。
	// 登出只是客户端删除 cookie ，已签出的 token 在到期前仍然有效（无服务端吊销）。
	AuthTokenDuration = 24 * time.Hour
)
