package models

// FeedingLog records a single feeding event.
type FeedingLog struct {
	ID       int64   `json:"id" bson:"_id"`
	Date     string  `json:"date" bson:"date"`
	Time     string  `json:"time" bson:"time"`
	FoodType string  `json:"foodType" bson:"food_type"`
	FoodName string  `json:"foodName" bson:"food_name"`
	Amount   string  `json:"amount" bson:"amount"`
	Notes    *string `json:"notes" bson:"notes,omitempty"`
	BabyID   int64   `json:"babyId" bson:"baby_id"`
}

// InsertFeedingLog is the feeding form payload. BabyID comes from the route.
type InsertFeedingLog struct {
	Date     string  `json:"date" binding:"required,datetime=2006-01-02"`
	Time     string  `json:"time" binding:"required,datetime=15:04"`
	FoodType string  `json:"foodType" binding:"required"`
	FoodName string  `json:"foodName" binding:"required"`
	Amount   string  `json:"amount" binding:"required"`
	Notes    *string `json:"notes"`
	BabyID   int64   `json:"-"`
}

// NewFeedingLog materializes a stored FeedingLog from its insert payload.
func NewFeedingLog(id int64, in InsertFeedingLog) FeedingLog {
	return FeedingLog{
		ID:       id,
		Date:     in.Date,
		Time:     in.Time,
		FoodType: in.FoodType,
		FoodName: in.FoodName,
		Amount:   in.Amount,
		Notes:    cloneStringPtr(in.Notes),
		BabyID:   in.BabyID,
	}
}

// Clone returns a deep copy of the log.
func (l FeedingLog) Clone() FeedingLog {
	l.Notes = cloneStringPtr(l.Notes)
	return l
}
