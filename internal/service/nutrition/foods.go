package nutrition

// CategoryAll selects the whole catalog.
const CategoryAll = "All"

// FoodCategories lists the catalog filters in display order.
var FoodCategories = []string{CategoryAll, "Fruits", "Vegetables", "Proteins", "Grains", "Dairy"}

// Food is a catalog entry suggested to parents.
type Food struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	AgeRange    string   `json:"ageRange"`
	Nutrients   []string `json:"nutrients"`
	Image       string   `json:"image"`
}

const imageParams = "?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60"

var catalog = []Food{
	{"1", "Avocado Puree", "Smooth, creamy puree rich in healthy fats and nutrients.", "Fruits", "6+ months",
		[]string{"Healthy Fats", "Potassium", "Vitamin E"}, "https://images.unsplash.com/photo-1546554137-f86b9593a222" + imageParams},
	{"2", "Sweet Potato Mash", "Naturally sweet puree packed with beta-carotene.", "Vegetables", "6+ months",
		[]string{"Vitamin A", "Fiber", "Potassium"}, "https://images.unsplash.com/photo-1596451190630-186aff535bf2" + imageParams},
	{"3", "Banana Oatmeal", "Hearty breakfast with natural sweetness and whole grains.", "Grains", "8+ months",
		[]string{"Fiber", "B Vitamins", "Iron"}, "https://images.unsplash.com/photo-1590137876181-2a5a7e340308" + imageParams},
	{"4", "Steamed Carrot Sticks", "Soft finger food perfect for developing motor skills.", "Vegetables", "9+ months",
		[]string{"Vitamin A", "Fiber", "Antioxidants"}, "https://images.unsplash.com/photo-1598170845058-32b9d6a5da37" + imageParams},
	{"5", "Greek Yogurt", "Creamy protein-rich dairy option for older babies.", "Dairy", "8+ months",
		[]string{"Protein", "Calcium", "Probiotics"}, "https://images.unsplash.com/photo-1570696516188-ade861b84a49" + imageParams},
	{"6", "Soft Cooked Lentils", "Protein-packed legumes that are easily mashable.", "Proteins", "8+ months",
		[]string{"Protein", "Iron", "Zinc"}, "https://images.unsplash.com/photo-1546549032-9571cd6b27df" + imageParams},
	{"7", "Apple Sauce", "Smooth fruit puree with natural sweetness and vitamin C.", "Fruits", "6+ months",
		[]string{"Vitamin C", "Fiber", "Antioxidants"}, "https://images.unsplash.com/photo-1576697935066-a5bd244ae2dd" + imageParams},
	{"8", "Mashed Peas", "Nutrient-rich vegetable puree with a vibrant color.", "Vegetables", "6+ months",
		[]string{"Vitamin K", "Folate", "Protein"}, "https://images.unsplash.com/photo-1612505972399-7fda478ea5a6" + imageParams},
	{"9", "Quinoa Porridge", "Complete protein grain that is gentle on baby digestive system.", "Grains", "8+ months",
		[]string{"Complete Protein", "Iron", "Magnesium"}, "https://images.unsplash.com/photo-1518779618904-a940d8161415" + imageParams},
}

// FilterFoods returns the catalog entries in category. An empty category or
// "All" returns everything; an unknown category returns an empty slice.
func FilterFoods(category string) []Food {
	out := make([]Food, 0, len(catalog))
	for _, food := range catalog {
		if category == "" || category == CategoryAll || food.Category == category {
			out = append(out, food.clone())
		}
	}
	return out
}

// FoodByID looks up a catalog entry.
func FoodByID(id string) (Food, bool) {
	for _, food := range catalog {
		if food.ID == id {
			return food.clone(), true
		}
	}
	return Food{}, false
}

func (f Food) clone() Food {
	f.Nutrients = append([]string(nil), f.Nutrients...)
	return f
}
