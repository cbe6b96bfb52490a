package models

// DailyDigest is the per-baby summary produced by the scheduled report.
type DailyDigest struct {
	Date                string `json:"date"`
	BabyID              int64  `json:"babyId"`
	BabyName            string `json:"babyName"`
	AgeLabel            string `json:"ageLabel"`
	FeedingCount        int    `json:"feedingCount"`
	MostCommonFood      string `json:"mostCommonFood"`
	Weight              string `json:"weight"`
	Height              string `json:"height"`
	MilestonesCompleted int    `json:"milestonesCompleted"`
	MilestonesTotal     int    `json:"milestonesTotal"`
}
