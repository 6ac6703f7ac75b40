package mapping

import (
	"strings"
	"time"
)

// 带时区偏移的格式
var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
}

// 不带时区的格式，Liquipedia 的 date / utcStartTime 均按 UTC 存储
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp 解析 ISO-8601 时间（末尾 Z 等价于 +00:00），失败返回 false
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatUTC 输出以 Z 结尾的 ISO-8601，秒以下精度保留到微秒
func FormatUTC(t time.Time) string {
	t = t.UTC().Truncate(time.Microsecond)
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02T15:04:05Z")
	}
	return t.Format("2006-01-02T15:04:05.000000Z")
}

// ToUTCISO 把任意时区的时间字符串归一化为 UTC 并以 Z 结尾；非字符串、空值或解析失败返回 nil
func ToUTCISO(v interface{}) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	t, ok := ParseTimestamp(s)
	if !ok {
		return nil
	}
	return strPtr(FormatUTC(t))
}
