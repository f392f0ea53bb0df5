// util/dateutil/dateutil.go
package dateutil

import (
	"errors"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format")

// 依次尝试的输入格式；不带时区的时间按本地时间解析
var layouts = []struct {
	layout string
	loc    *time.Location
}{
	{DateLayout, time.UTC},
	{time.RFC3339Nano, time.UTC},
	{time.RFC3339, time.UTC},
	{"2006-01-02T15:04:05", time.Local},
}

// Overlaps reports whether the closed ranges [aStart, aEnd] and [bStart, bEnd] intersect.
// Pass values from Day or ParseDate to compare whole calendar days.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// FormatDate 按 t 自身时区的日历日期输出 YYYY-MM-DD
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// Day 取 t 自身时区的年月日，返回该日 UTC 零点
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses s and reduces it to its calendar day (see Day).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, l := range layouts {
		if t, err := time.ParseInLocation(l.layout, s, l.loc); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
