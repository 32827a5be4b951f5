package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseDay parses the date arguments accepted by the report command
// Supported formats:
// - "today", "yesterday"
// - dd/mm/yyyy (e.g., "15/12/2026")
// - X days ago (e.g., "3 days", "1 day")
// - X weeks ago (e.g., "2 weeks", "1 week")
func ParseDay(input string) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch input {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if day, err := parseDateFormat(input); err == nil {
		return day, nil
	}

	if day, err := parseRelativeDays(input, today); err == nil {
		return day, nil
	}

	return time.Time{}, fmt.Errorf("invalid date format. Use: today, yesterday, dd/mm/yyyy, X days, or X weeks")
}

// parseDateFormat parses dd/mm/yyyy format
func parseDateFormat(input string) (time.Time, error) {
	dateRegex := regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	matches := dateRegex.FindStringSubmatch(input)

	if len(matches) != 4 {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return time.Time{}, fmt.Errorf("year must be between 2000 and 2100")
	}

	parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)

	// Check if date is valid (handles leap years, etc.)
	if parsed.Day() != day || parsed.Month() != time.Month(month) || parsed.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}

	return parsed, nil
}

// parseRelativeDays parses "X days" / "X weeks" as days before today
func parseRelativeDays(input string, today time.Time) (time.Time, error) {
	relativeRegex := regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks)(\s+ago)?$`)
	matches := relativeRegex.FindStringSubmatch(input)

	if len(matches) < 3 {
		return time.Time{}, fmt.Errorf("invalid relative date format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "day", "days":
		if amount < 1 || amount > 365 {
			return time.Time{}, fmt.Errorf("days must be between 1 and 365")
		}
		return today.AddDate(0, 0, -amount), nil

	case "week", "weeks":
		if amount < 1 || amount > 52 {
			return time.Time{}, fmt.Errorf("weeks must be between 1 and 52")
		}
		return today.AddDate(0, 0, -amount*7), nil

	default:
		return time.Time{}, fmt.Errorf("unsupported time unit")
	}
}

// EndOfDay returns the last instant of the day containing t
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
