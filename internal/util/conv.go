package util

import (
	"strconv"
	"strings"
	"time"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParseOptionalUint returns nil for an empty string.
func ParseOptionalUint(s string) (*uint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v == 0 {
		return nil, InvalidInput("invalid id: " + s)
	}
	id := uint(v)
	return &id, nil
}

// ParsePage 解析分页参数，非法值回退到默认值，limit 上限 100
func ParsePage(pageStr, limitStr string, defaultLimit int) (page, limit int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// ParseTimeBound parses RFC3339 or YYYY-MM-DD. A date-only upper bound covers the whole day.
func ParseTimeBound(s string, upper bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return nil, InvalidInput("invalid date: " + s)
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// ParseDayRange parses "<n>d". Empty input yields def.
func ParseDayRange(s string, def, max int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	if !strings.HasSuffix(s, "d") {
		return 0, InvalidInput("range must look like 7d")
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
	if err != nil || n < 1 || n > max {
		return 0, InvalidInput("range must be between 1d and " + strconv.Itoa(max) + "d")
	}
	return n, nil
}
