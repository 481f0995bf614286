// Package errs 定义对外可见的错误分类。
// 鉴权与授权失败永远不把底层存储错误透传给调用方，只收敛到这里的几类。
package errs

import "errors"

var (
	ErrNotFound  = errors.New("record not found")                             // 目标记录不存在
	ErrConflict  = errors.New("record already exists")                        // 例如邮箱重复
	ErrLastAdmin = errors.New("at least one super admin account is required") // 最后一个超级管理员不可删除或降级
)
