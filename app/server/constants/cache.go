package constants

import "time"

const (
	CacheKeyDashboardAnalytics = "examadmin:analytics:dashboard"
	CacheKeyStudentGrowth      = "examadmin:analytics:growth"
	CacheKeyExamDistribution   = "examadmin:analytics:distribution"
)

const (
	// 看板数字允许短暂滞后，换取列表页频繁刷新时不反复全表 count
	CacheExpireAnalytics = 5 * time.Minute
)
