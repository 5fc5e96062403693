package constant

import (
	"fmt"
	"time"
)

const (
	BasePrefix = "i18n:"
	Separator  = ":"
)

// Redis 键模板
const (
	BundleCache     = BasePrefix + "bundle" + Separator + "%s"  // 语言包缓存（格式：i18n:bundle:<locale>）
	DailyResolution = BasePrefix + "resolve" + Separator + "%s" // 每日解析计数（格式：i18n:resolve:yyyyMMdd，hash 字段为 <locale>:<outcome>）
)

// StatsRetention 每日解析计数在 Redis 中的保留时长
const StatsRetention = 3 * 24 * time.Hour

// GetBundleCacheKey 生成语言包缓存 key
func GetBundleCacheKey(locale string) string {
	return fmt.Sprintf(BundleCache, locale)
}

// GetDateKey  生成日期键（格式：yyyyMMdd）
func GetDateKey(t time.Time) string {
	return t.Format("20060102")
}

// GetDailyResolutionKey 生成每日解析计数键（格式：i18n:resolve:yyyyMMdd）
func GetDailyResolutionKey(date string) string {
	return fmt.Sprintf(DailyResolution, date)
}

// GetResolutionField 生成计数字段（格式：<locale>:<outcome>）
func GetResolutionField(locale, outcome string) string {
	return locale + Separator + outcome
}
