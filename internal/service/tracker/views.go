package tracker

import (
	"context"
	"fmt"

	"github.com/mamadbah2/babytrack/internal/domain/models"
	"github.com/mamadbah2/babytrack/internal/service/nutrition"
)

// DailyCount is one bar of the weekly feeding chart.
type DailyCount struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary is the dashboard view of a baby.
type Summary struct {
	BabyID                 int64              `json:"babyId"`
	Name                   string             `json:"name"`
	AgeLabel               string             `json:"ageLabel"`
	AgeGroup               nutrition.AgeGroup `json:"ageGroup"`
	TodayFeedingCount      int                `json:"todayFeedingCount"`
	MostCommonFood         *string            `json:"mostCommonFood"`
	AvgTimeBetweenFeedings *string            `json:"avgTimeBetweenFeedings"`
	LastFeeding            *string            `json:"lastFeeding"`
	LastSevenDays          []DailyCount       `json:"lastSevenDays"`
	Weight                 string             `json:"weight"`
	Height                 string             `json:"height"`
	MilestonesCompleted    int                `json:"milestonesCompleted"`
	MilestonesTotal        int                `json:"milestonesTotal"`
}

// Recommendations is the feeding guidance for a baby's age group.
type Recommendations struct {
	BabyID           int64                     `json:"babyId"`
	AgeGroup         nutrition.AgeGroup        `json:"ageGroup"`
	Schedule         []nutrition.ScheduleEntry `json:"schedule"`
	NutritionistNote string                    `json:"nutritionistNote"`
	Restrictions     []string                  `json:"restrictions"`
	Foods            []nutrition.Food          `json:"foods"`
}

// Summary computes the dashboard statistics for a baby as of now.
func (s *Service) Summary(ctx context.Context, userID, babyID int64) (*Summary, error) {
	baby, err := s.GetBaby(ctx, userID, babyID)
	if err != nil {
		return nil, err
	}
	birthday, err := nutrition.ParseDate(baby.Birthday)
	if err != nil {
		return nil, fmt.Errorf("baby %d: %w", baby.ID, err)
	}

	logs, err := s.store.ListFeedingLogsByBaby(ctx, babyID)
	if err != nil {
		return nil, fmt.Errorf("list feeding logs: %w", err)
	}
	milestones, err := s.store.ListMilestonesByBaby(ctx, babyID)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}

	now := s.now()
	summary := &Summary{
		BabyID:            baby.ID,
		Name:              baby.Name,
		AgeLabel:          nutrition.AgeLabel(birthday, now),
		AgeGroup:          nutrition.GroupFor(birthday, now),
		TodayFeedingCount: nutrition.TodayFeedingCount(logs, now),
		Weight:            baby.Weight,
		Height:            baby.Height,
		MilestonesTotal:   len(milestones),
	}
	if food, ok := nutrition.MostCommonFood(logs); ok {
		summary.MostCommonFood = &food
	}
	if avg, ok := nutrition.AvgTimeBetweenFeedings(logs); ok {
		summary.AvgTimeBetweenFeedings = &avg
	}
	if last, ok := nutrition.LastFeeding(logs); ok {
		summary.LastFeeding = &last
	}
	for _, day := range nutrition.LastSevenDays(now) {
		summary.LastSevenDays = append(summary.LastSevenDays, DailyCount{
			Date:  day,
			Label: nutrition.FormatDayShort(day),
			Count: nutrition.FeedingCountForDay(logs, day),
		})
	}
	for _, m := range milestones {
		if m.Completed {
			summary.MilestonesCompleted++
		}
	}
	return summary, nil
}

// Recommendations selects the schedule, advice and catalog foods for a baby.
func (s *Service) Recommendations(ctx context.Context, userID, babyID int64, category string) (*Recommendations, error) {
	baby, err := s.GetBaby(ctx, userID, babyID)
	if err != nil {
		return nil, err
	}
	birthday, err := nutrition.ParseDate(baby.Birthday)
	if err != nil {
		return nil, fmt.Errorf("baby %d: %w", baby.ID, err)
	}

	group := nutrition.GroupFor(birthday, s.now())
	return &Recommendations{
		BabyID:           baby.ID,
		AgeGroup:         group,
		Schedule:         nutrition.FeedingSchedule(group),
		NutritionistNote: nutrition.NutritionistNote(group),
		Restrictions:     restrictionsOf(baby),
		Foods:            nutrition.FilterFoods(category),
	}, nil
}

func restrictionsOf(baby *models.Baby) []string {
	if baby.Restrictions == nil {
		return []string{}
	}
	return baby.Restrictions
}
