package inits

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger 初始化日志。开发模式输出彩色易读格式，生产模式输出 JSON。
func Logger(debugMode bool) (l *zap.Logger, err error) {
	if debugMode {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return l.With(zap.String("service", "exam-prep-admin")), nil
}
