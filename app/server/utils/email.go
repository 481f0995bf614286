package utils

import "strings"

// NormalizeEmail 邮箱统一小写去空白后再入库/查询，登录键只有一种写法
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UsernameFromEmail 未提供显示名时取邮箱 @ 前的部分
func UsernameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
