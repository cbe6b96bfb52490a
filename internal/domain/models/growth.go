package models

// GrowthRecord is a weight/height measurement taken on a given date.
type GrowthRecord struct {
	ID     int64   `json:"id" bson:"_id"`
	Date   string  `json:"date" bson:"date"`
	Weight string  `json:"weight" bson:"weight"`
	Height string  `json:"height" bson:"height"`
	Notes  *string `json:"notes" bson:"notes,omitempty"`
	BabyID int64   `json:"babyId" bson:"baby_id"`
}

// InsertGrowthRecord is the measurement form payload. BabyID comes from the route.
type InsertGrowthRecord struct {
	Date   string  `json:"date" binding:"required,datetime=2006-01-02"`
	Weight string  `json:"weight" binding:"required,numeric"`
	Height string  `json:"height" binding:"required,numeric"`
	Notes  *string `json:"notes"`
	BabyID int64   `json:"-"`
}

// NewGrowthRecord materializes a stored GrowthRecord from its insert payload.
func NewGrowthRecord(id int64, in InsertGrowthRecord) GrowthRecord {
	return GrowthRecord{
		ID:     id,
		Date:   in.Date,
		Weight: in.Weight,
		Height: in.Height,
		Notes:  cloneStringPtr(in.Notes),
		BabyID: in.BabyID,
	}
}

// Clone returns a deep copy of the record.
func (r GrowthRecord) Clone() GrowthRecord {
	r.Notes = cloneStringPtr(r.Notes)
	return r
}

// MeasurementPatch returns the profile update implied by this record.
func (r GrowthRecord) MeasurementPatch() BabyPatch {
	weight, height := r.Weight, r.Height
	return BabyPatch{Weight: &weight, Height: &height}
}
