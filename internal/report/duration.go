package report

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// FormatDuration 把募集耗时格式化为报表中的可读字符串：
// 超过一天显示天/时/分，超过一小时显示时/分，否则显示分/秒。
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	days := int64(d / day)
	d -= time.Duration(days) * day
	hours := int64(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int64(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := int64(d / time.Second)

	switch {
	case days > 0:
		return fmt.Sprintf("%d дн. %02d ч. %02d мин.", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%d ч. %02d мин.", hours, minutes)
	default:
		return fmt.Sprintf("%d мин. %02d сек.", minutes, seconds)
	}
}
