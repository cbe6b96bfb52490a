package nutrition

import (
	"fmt"
	"sort"
	"time"

	"github.com/mamadbah2/babytrack/internal/domain/models"
)

// MostCommonFood returns the most frequently logged food name. On a tie the
// food that appeared first in logs wins. ok is false for an empty slice.
func MostCommonFood(logs []models.FeedingLog) (food string, ok bool) {
	if len(logs) == 0 {
		return "", false
	}

	counts := make(map[string]int)
	var seen []string
	for _, entry := range logs {
		if _, exists := counts[entry.FoodName]; !exists {
			seen = append(seen, entry.FoodName)
		}
		counts[entry.FoodName]++
	}

	best := 0
	for _, name := range seen {
		if counts[name] > best {
			food, best = name, counts[name]
		}
	}
	return food, true
}

// FeedingCountForDay counts logs whose date equals day exactly.
func FeedingCountForDay(logs []models.FeedingLog, day string) int {
	count := 0
	for _, entry := range logs {
		if entry.Date == day {
			count++
		}
	}
	return count
}

// LastFeeding renders the most recent parseable log as "May 15, 2024 at
// 8:30 AM". ok is false when no log carries a valid date and time.
func LastFeeding(logs []models.FeedingLog) (string, bool) {
	var latest time.Time
	var found *models.FeedingLog
	for i, entry := range logs {
		t, err := time.Parse(DateLayout+" "+TimeLayout, entry.Date+" "+entry.Time)
		if err != nil {
			continue
		}
		if found == nil || t.After(latest) {
			latest, found = t, &logs[i]
		}
	}
	if found == nil {
		return "", false
	}
	return FormatDate(found.Date) + " at " + FormatTime(found.Time), true
}

// TodayFeedingCount counts logs dated on now's calendar day.
func TodayFeedingCount(logs []models.FeedingLog, now time.Time) int {
	return FeedingCountForDay(logs, CurrentDate(now))
}

// AvgTimeBetweenFeedings averages the gap between consecutive feedings in
// chronological order, e.g. "3.5 hours". Logs whose date or time cannot be
// parsed are ignored; ok is false when fewer than two remain.
func AvgTimeBetweenFeedings(logs []models.FeedingLog) (avg string, ok bool) {
	stamps := make([]time.Time, 0, len(logs))
	for _, entry := range logs {
		t, err := time.Parse(DateLayout+" "+TimeLayout, entry.Date+" "+entry.Time)
		if err != nil {
			continue
		}
		stamps = append(stamps, t)
	}
	if len(stamps) < 2 {
		return "", false
	}

	sort.Slice(stamps, func(i, j int) bool { return stamps[i].Before(stamps[j]) })
	total := stamps[len(stamps)-1].Sub(stamps[0])
	hours := total.Hours() / float64(len(stamps)-1)
	return fmt.Sprintf("%.1f hours", hours), true
}
