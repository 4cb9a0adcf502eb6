package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for results, summaries and query params
const DateLayout = "2006-01-02"

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWord       = regexp.MustCompile(`[^\w]`)
	digitsOnly    = regexp.MustCompile(`^[0-9]+$`)
)

// Slugify lowercases a schedule label, turns whitespace runs into a single
// underscore and strips every non-word character. "01:00 PM" -> "0100_pm".
// Leading, trailing and repeated whitespace does not change the slug.
func Slugify(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = whitespaceRun.ReplaceAllString(s, "_")
	return nonWord.ReplaceAllString(s, "")
}

// IsDigits reports whether s is a non-empty string of ASCII digits
func IsDigits(s string) bool {
	return digitsOnly.MatchString(s)
}

// PadNumber left-pads a played or winning number with zeros to the given digit count.
// Numbers already longer than digits are returned unchanged.
func PadNumber(number string, digits int) string {
	number = strings.TrimSpace(number)
	if len(number) >= digits {
		return number
	}
	return strings.Repeat("0", digits-len(number)) + number
}

// NormalizeTicketID prepares a ticket id typed or scanned by a customer for index lookup.
// raw must already be URL-decoded (gin path params are); it is not decoded again.
func NormalizeTicketID(raw string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if id == "" {
		return "", errors.New("empty ticket id")
	}
	return id, nil
}

// ParseDate parses a YYYY-MM-DD date in the given location
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(value), loc)
}

// DayWindow returns the half-open interval [startOfDay, startOfNextDay) for a
// YYYY-MM-DD date. Every sales query, indexed or not, filters with it.
func DayWindow(date string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1), nil
}

// InWindow reports whether t falls in [start, end)
func InWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// DatesBetween lists every calendar day from..to inclusive as YYYY-MM-DD
func DatesBetween(from, to string, loc *time.Location) ([]string, error) {
	start, err := ParseDate(from, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid from date: %w", err)
	}
	end, err := ParseDate(to, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid to date: %w", err)
	}
	if end.Before(start) {
		return nil, errors.New("to date is before from date")
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}
