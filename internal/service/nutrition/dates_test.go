package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := ParseDate(value)
	require.NoError(t, err)
	return d
}

func TestGroupFor(t *testing.T) {
	tests := []struct {
		name     string
		birthday string
		now      time.Time
		want     AgeGroup
	}{
		{"born today", "2024-05-15", time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC), AgeGroupNewborn},
		{"fourteen months", "2023-03-15", time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC), AgeGroupToddler},
		{"day before six months", "2023-11-20", time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC), AgeGroupNewborn},
		{"six months exactly", "2023-11-20", time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), AgeGroupInfant},
		{"eleven months", "2023-06-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), AgeGroupInfant},
		{"two years", "2022-05-15", time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), AgeGroupChild},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupFor(mustDate(t, tt.birthday), tt.now))
		})
	}
}

func TestAgeLabel(t *testing.T) {
	tests := []struct {
		name     string
		birthday string
		now      time.Time
		want     string
	}{
		{"days", "2024-05-01", time.Date(2024, 5, 11, 12, 0, 0, 0, time.UTC), "10 days old"},
		{"future birthday", "2024-06-01", time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC), "0 days old"},
		{"months", "2024-01-10", time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC), "4 months old"},
		{"singular year and month", "2022-04-10", time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC), "2 years, 1 month old"},
		{"zero months", "2023-05-11", time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC), "2 years, 0 months old"},
		{"plural", "2021-05-11", time.Date(2024, 7, 11, 0, 0, 0, 0, time.UTC), "3 years, 2 months old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeLabel(mustDate(t, tt.birthday), tt.now))
		})
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("15/05/2024")
	assert.Error(t, err)
}

func TestFormatting(t *testing.T) {
	now := time.Date(2024, 3, 2, 7, 5, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-02", CurrentDate(now))

	assert.Equal(t, "Jan 5, 2024", FormatDate("2024-01-05"))
	assert.Equal(t, "1/5", FormatDayShort("2024-01-05"))
	assert.Equal(t, "", FormatDate(""))
	assert.Equal(t, "not a date", FormatDate("not a date"))

	assert.Equal(t, "2:05 PM", FormatTime("14:05"))
	assert.Equal(t, "12:30 AM", FormatTime("00:30"))
	assert.Equal(t, "12:00 PM", FormatTime("12:00"))
	assert.Equal(t, "9:15 AM", FormatTime("09:15"))
	assert.Equal(t, "", FormatTime(""))
}

func TestLastSevenDays(t *testing.T) {
	days := LastSevenDays(time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{
		"2024-02-25", "2024-02-26", "2024-02-27", "2024-02-28",
		"2024-02-29", "2024-03-01", "2024-03-02",
	}, days)
}
