package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"task-dashboard/internal/domain"
)

var offsetPattern = regexp.MustCompile(`^([+-]?)(\d+)([dwMy])$`)

// ParseDate accepts ISO dates, the keywords today/tomorrow/yesterday and
// offsets such as +3d or -1w. "none" yields a nil time and the special "none".
func ParseDate(value string) (*time.Time, string, error) {
	value = strings.TrimSpace(value)

	if strings.ToLower(value) == "none" {
		return nil, "none", nil
	}

	if t, ok := parseRelativeKeyword(strings.ToLower(value)); ok {
		return &t, "", nil
	}

	if t, err := parseRelativeOffset(value); err == nil {
		return &t, "", nil
	}

	if t, err := domain.ParseDay(value); err == nil {
		return &t, "", nil
	}

	formats := []string{
		"2006/01/02",
		"02-01-2006",
		"02/01/2006",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, value, time.Local); err == nil {
			return &t, "", nil
		}
	}

	return nil, "", fmt.Errorf("unable to parse date: %s (expected ISO date, relative keyword, or offset)", value)
}

// NormalizeDate converts a date flag value to the stored YYYY-MM-DD form.
// "none" and the empty string clear the date.
func NormalizeDate(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	t, special, err := ParseDate(value)
	if err != nil {
		return "", err
	}
	if special == "none" {
		return "", nil
	}
	return FormatDay(*t), nil
}

func parseRelativeKeyword(value string) (time.Time, bool) {
	now := time.Now()

	switch value {
	case "today":
		return StartOfDay(now), true
	case "tomorrow":
		return StartOfDay(now.AddDate(0, 0, 1)), true
	case "yesterday":
		return StartOfDay(now.AddDate(0, 0, -1)), true
	default:
		return time.Time{}, false
	}
}

func parseRelativeOffset(value string) (time.Time, error) {
	matches := offsetPattern.FindStringSubmatch(value)

	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid offset format")
	}

	sign := matches[1]
	numStr := matches[2]
	unit := matches[3]

	num, err := strconv.Atoi(numStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number in offset: %s", numStr)
	}

	if sign == "-" {
		num = -num
	}

	now := time.Now()
	var result time.Time

	switch unit {
	case "d":
		result = now.AddDate(0, 0, num)
	case "w":
		result = now.AddDate(0, 0, num*7)
	case "M":
		result = now.AddDate(0, num, 0)
	case "y":
		result = now.AddDate(num, 0, 0)
	default:
		return time.Time{}, fmt.Errorf("unknown unit: %s", unit)
	}

	return StartOfDay(result), nil
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysUntil counts calendar days from the start of now's day to date.
// It reports false when date is empty or malformed.
func DaysUntil(date string, now time.Time) (int, bool) {
	d, err := domain.ParseDay(date)
	if err != nil {
		return 0, false
	}
	return domain.DaysBetween(StartOfDay(now), d), true
}

func FormatDay(t time.Time) string {
	return t.Format(domain.DateLayout)
}
