// Package nutrition holds the pure helpers behind the feeding views: age
// bucketing, date formatting, feeding statistics and the static schedule and
// food tables.
package nutrition

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar date format used on every record.
	DateLayout = "2006-01-02"
	// TimeLayout is the 24h clock format of a feeding log.
	TimeLayout = "15:04"
)

// AgeGroup is one of the four calendar-month buckets derived from a birthday.
type AgeGroup string

const (
	AgeGroupNewborn AgeGroup = "0-6 months"
	AgeGroupInfant  AgeGroup = "6-12 months"
	AgeGroupToddler AgeGroup = "12-24 months"
	AgeGroupChild   AgeGroup = "2+ years"
)

// ParseDate parses a YYYY-MM-DD string as a UTC calendar date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

// monthsBetween counts whole calendar months from birthday to now. The month
// in progress only counts once its day-of-month has been reached.
func monthsBetween(birthday, now time.Time) int {
	months := (now.Year()-birthday.Year())*12 + int(now.Month()) - int(birthday.Month())
	if now.Day() < birthday.Day() {
		months--
	}
	return months
}

// GroupFor buckets a birthday into its age group as of now.
func GroupFor(birthday, now time.Time) AgeGroup {
	switch months := monthsBetween(birthday, now); {
	case months < 6:
		return AgeGroupNewborn
	case months < 12:
		return AgeGroupInfant
	case months < 24:
		return AgeGroupToddler
	default:
		return AgeGroupChild
	}
}

// AgeLabel renders the baby's age for display: days below one month, months
// below two years, then years and months.
func AgeLabel(birthday, now time.Time) string {
	months := monthsBetween(birthday, now)

	switch {
	case months < 1:
		days := int(now.Sub(birthday) / (24 * time.Hour))
		if days < 0 {
			days = 0
		}
		return fmt.Sprintf("%d days old", days)
	case months < 24:
		return fmt.Sprintf("%d months old", months)
	default:
		years, rest := months/12, months%12
		return fmt.Sprintf("%d %s, %d %s old", years, plural(years, "year"), rest, plural(rest, "month"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// CurrentDate returns now as YYYY-MM-DD.
func CurrentDate(now time.Time) string {
	return now.Format(DateLayout)
}

// FormatDate turns YYYY-MM-DD into "Jan 2, 2006". Unparseable input is
// returned unchanged.
func FormatDate(value string) string {
	return reformatDate(value, "Jan 2, 2006")
}

// FormatDayShort turns YYYY-MM-DD into "1/2" for chart axes.
func FormatDayShort(value string) string {
	return reformatDate(value, "1/2")
}

func reformatDate(value, layout string) string {
	if value == "" {
		return ""
	}
	t, err := ParseDate(value)
	if err != nil {
		return value
	}
	return t.Format(layout)
}

// FormatTime turns a 24h "HH:MM" value into a 12h clock such as "2:05 PM".
func FormatTime(value string) string {
	if value == "" {
		return ""
	}
	hours, minutes, ok := strings.Cut(value, ":")
	if !ok {
		return value
	}
	h, err := strconv.Atoi(hours)
	if err != nil {
		return value
	}

	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%s %s", h12, minutes, suffix)
}

// LastSevenDays lists the dates from six days ago through today, oldest first.
func LastSevenDays(now time.Time) []string {
	days := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		days = append(days, now.AddDate(0, 0, -i).Format(DateLayout))
	}
	return days
}
