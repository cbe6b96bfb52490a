package nutrition

// ScheduleEntry is one slot of a daily feeding schedule.
type ScheduleEntry struct {
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var (
	newbornSchedule = []ScheduleEntry{
		{"6:00 AM", "Morning Feeding", "Breast milk or formula"},
		{"9:00 AM", "Mid-morning Feeding", "Breast milk or formula"},
		{"12:00 PM", "Noon Feeding", "Breast milk or formula"},
		{"3:00 PM", "Afternoon Feeding", "Breast milk or formula"},
		{"6:00 PM", "Evening Feeding", "Breast milk or formula"},
		{"9:00 PM", "Night Feeding", "Breast milk or formula"},
		{"12:00 AM", "Midnight Feeding", "Breast milk or formula (if needed)"},
	}
	infantSchedule = []ScheduleEntry{
		{"7:00 AM", "Breakfast", "Breast milk or formula + infant cereal"},
		{"10:00 AM", "Mid-morning Snack", "Fruit puree"},
		{"1:00 PM", "Lunch", "Vegetable puree + protein"},
		{"4:00 PM", "Afternoon Snack", "Yogurt or mashed fruit"},
		{"7:00 PM", "Dinner", "Mixed vegetable and protein puree"},
		{"9:30 PM", "Before Bed", "Breast milk or formula"},
	}
	toddlerSchedule = []ScheduleEntry{
		{"7:30 AM", "Breakfast", "Cereal with milk + fruit pieces"},
		{"10:30 AM", "Morning Snack", "Cheese or yogurt + crackers"},
		{"1:00 PM", "Lunch", "Protein + vegetables + grains"},
		{"4:00 PM", "Afternoon Snack", "Fruit pieces + small sandwich"},
		{"7:00 PM", "Dinner", "Protein + vegetables + grains"},
		{"8:30 PM", "Before Bed", "Milk or formula (if needed)"},
	}
)

const (
	newbornNote = "Breast milk or formula provides all the nutrition your baby needs at this stage. " +
		"Solid foods should generally be introduced around 6 months when baby shows signs of readiness."
	infantNote = "Continue breast milk or formula as the primary source of nutrition, but begin introducing a variety of pureed foods. " +
		"Start with single-ingredient foods and wait 3-5 days between new foods to watch for allergies."
	toddlerNote = "Offer a wide variety of foods from all food groups. Focus on nutrient-dense options and limit added sugars and salt. " +
		"Encourage self-feeding and development of fine motor skills."
)

// FeedingSchedule returns the suggested daily schedule for an age group.
// Every group from 12 months on shares the toddler schedule.
func FeedingSchedule(group AgeGroup) []ScheduleEntry {
	var src []ScheduleEntry
	switch group {
	case AgeGroupNewborn:
		src = newbornSchedule
	case AgeGroupInfant:
		src = infantSchedule
	default:
		src = toddlerSchedule
	}
	return append([]ScheduleEntry(nil), src...)
}

// NutritionistNote returns the advisory text for an age group.
func NutritionistNote(group AgeGroup) string {
	switch group {
	case AgeGroupNewborn:
		return newbornNote
	case AgeGroupInfant:
		return infantNote
	default:
		return toddlerNote
	}
}
