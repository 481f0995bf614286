package utils

// P 取字面量地址，响应结构里的可选字段用
func P[T any](v T) *T {
	return &v
}
