package models

// Baby is a child profile tracked by a parent.
type Baby struct {
	ID           int64    `json:"id" bson:"_id"`
	Name         string   `json:"name" bson:"name"`
	Birthday     string   `json:"birthday" bson:"birthday"`
	Weight       string   `json:"weight" bson:"weight"`
	Height       string   `json:"height" bson:"height"`
	FeedingType  string   `json:"feedingType" bson:"feeding_type"`
	Restrictions []string `json:"restrictions" bson:"restrictions"`
	UserID       int64    `json:"userId" bson:"user_id"`
}

// InsertBaby is the profile form payload. UserID is filled from the caller's
// identity, never from the request body.
type InsertBaby struct {
	Name         string   `json:"name" binding:"required"`
	Birthday     string   `json:"birthday" binding:"required,datetime=2006-01-02"`
	Weight       string   `json:"weight" binding:"required,numeric"`
	Height       string   `json:"height" binding:"required,numeric"`
	FeedingType  string   `json:"feedingType" binding:"required"`
	Restrictions []string `json:"restrictions" binding:"required,dive,required"`
	UserID       int64    `json:"-"`
}

// BabyPatch carries a partial profile update; nil fields are left untouched.
type BabyPatch struct {
	Name         *string   `json:"name" binding:"omitempty,min=1"`
	Birthday     *string   `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	Weight       *string   `json:"weight" binding:"omitempty,numeric"`
	Height       *string   `json:"height" binding:"omitempty,numeric"`
	FeedingType  *string   `json:"feedingType" binding:"omitempty,min=1"`
	Restrictions *[]string `json:"restrictions" binding:"omitempty,dive,required"`
}

// NewBaby materializes a stored Baby from its insert payload.
func NewBaby(id int64, in InsertBaby) Baby {
	return Baby{
		ID:           id,
		Name:         in.Name,
		Birthday:     in.Birthday,
		Weight:       in.Weight,
		Height:       in.Height,
		FeedingType:  in.FeedingType,
		Restrictions: cloneStrings(in.Restrictions),
		UserID:       in.UserID,
	}
}

// Apply shallow-merges the patch over b.
func (p BabyPatch) Apply(b *Baby) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Birthday != nil {
		b.Birthday = *p.Birthday
	}
	if p.Weight != nil {
		b.Weight = *p.Weight
	}
	if p.Height != nil {
		b.Height = *p.Height
	}
	if p.FeedingType != nil {
		b.FeedingType = *p.FeedingType
	}
	if p.Restrictions != nil {
		b.Restrictions = cloneStrings(*p.Restrictions)
	}
}

// Clone returns a deep copy of the baby.
func (b Baby) Clone() Baby {
	b.Restrictions = cloneStrings(b.Restrictions)
	return b
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return append([]string(nil), in...)
}

func cloneStringPtr(in *string) *string {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}
