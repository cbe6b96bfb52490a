package models

// Milestone is a developmental checkpoint attached to a baby.
type Milestone struct {
	ID            int64   `json:"id" bson:"_id"`
	Name          string  `json:"name" bson:"name"`
	AgeRange      string  `json:"ageRange" bson:"age_range"`
	Description   string  `json:"description" bson:"description"`
	Completed     bool    `json:"completed" bson:"completed"`
	CompletedDate *string `json:"completedDate" bson:"completed_date,omitempty"`
	BabyID        int64   `json:"babyId" bson:"baby_id"`
}

// InsertMilestone is the payload used to create a milestone.
type InsertMilestone struct {
	Name          string  `json:"name" binding:"required"`
	AgeRange      string  `json:"ageRange" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	Completed     bool    `json:"completed"`
	CompletedDate *string `json:"completedDate" binding:"omitempty,datetime=2006-01-02"`
	BabyID        int64   `json:"-"`
}

// MilestonePatch toggles completion. CompletedDate distinguishes an explicit
// null (clear) from an absent field (keep).
type MilestonePatch struct {
	Completed     *bool          `json:"completed"`
	CompletedDate NullableString `json:"completedDate" binding:"omitempty,datetime=2006-01-02"`
}

// NewMilestone materializes a stored Milestone from its insert payload.
func NewMilestone(id int64, in InsertMilestone) Milestone {
	return Milestone{
		ID:            id,
		Name:          in.Name,
		AgeRange:      in.AgeRange,
		Description:   in.Description,
		Completed:     in.Completed,
		CompletedDate: cloneStringPtr(in.CompletedDate),
		BabyID:        in.BabyID,
	}
}

// Apply shallow-merges the patch over m.
func (p MilestonePatch) Apply(m *Milestone) {
	if p.Completed != nil {
		m.Completed = *p.Completed
	}
	if p.CompletedDate.Set {
		m.CompletedDate = cloneStringPtr(p.CompletedDate.Value)
	}
}

// Clone returns a deep copy of the milestone.
func (m Milestone) Clone() Milestone {
	m.CompletedDate = cloneStringPtr(m.CompletedDate)
	return m
}

type milestoneTemplate struct {
	name        string
	ageRange    string
	description string
}

var defaultMilestones = []milestoneTemplate{
	{"First Solids", "4-6 months", "Introduction of first solid foods like rice cereal or simple vegetable purees."},
	{"Sitting Independently", "5-7 months", "Baby can sit in high chair for meals without support, improving feeding posture."},
	{"Pincer Grasp", "8-10 months", "Development of fine motor skills allowing baby to pick up small pieces of food."},
	{"Self-Feeding", "9-12 months", "Baby begins to use spoon or fork with assistance to feed themselves."},
	{"Drinking from Cup", "12-15 months", "Transition from bottle to sippy cup or regular cup with assistance."},
}

// DefaultMilestones returns the five milestones seeded for every new baby.
func DefaultMilestones(babyID int64) []InsertMilestone {
	out := make([]InsertMilestone, 0, len(defaultMilestones))
	for _, tpl := range defaultMilestones {
		out = append(out, InsertMilestone{
			Name:        tpl.name,
			AgeRange:    tpl.ageRange,
			Description: tpl.description,
			BabyID:      babyID,
		})
	}
	return out
}
