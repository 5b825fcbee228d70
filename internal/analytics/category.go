package analytics

import (
	"strings"

	"ecofeast-backend/internal/models"
)

type CategoryWaste struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Main", []string{"Burger", "Pasta", "Salmon"}},
	{"Appetizer", []string{"Salad"}},
	{"Breakfast", []string{"Toast"}},
}

// InferCategory maps an item name to a category by case-sensitive substring.
// MenuItem.Category is not consulted.
func InferCategory(itemName string) (string, bool) {
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(itemName, kw) {
				return c.category, true
			}
		}
	}
	return "", false
}

// ByCategory sums waste per inferred category in a fixed order. Items that
// match no keyword are dropped, not bucketed as "Other".
func ByCategory(records []models.DailyRecord) []CategoryWaste {
	out := make([]CategoryWaste, len(categoryKeywords))
	pos := make(map[string]int, len(categoryKeywords))
	for i, c := range categoryKeywords {
		out[i].Name = c.category
		pos[c.category] = i
	}

	for _, r := range records {
		cat, ok := InferCategory(r.ItemName)
		if !ok || r.Waste <= 0 {
			continue
		}
		out[pos[cat]].Value += r.Waste
	}
	return out
}
