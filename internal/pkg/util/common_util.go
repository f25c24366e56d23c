package util

import (
	"time"
)

// GetMidnight truncates a time to the start of its calendar day in UTC.
// Rollups and metric rows key on this value, so it must be stable across
// server timezones.
func GetMidnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Yesterday returns the start of the previous calendar day, the default
// rollup target.
func Yesterday(now time.Time) time.Time {
	return GetMidnight(now).AddDate(0, 0, -1)
}

// NormalizePage clamps pagination inputs to sane bounds.
func NormalizePage(page, pageSize, maxPageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
