package analytics

import (
	"sort"

	"ecofeast-backend/internal/models"
)

const DefaultTopLimit = 5

type ItemWaste struct {
	ItemName   string `json:"itemName"`
	TotalWaste int    `json:"totalWaste"`
	// TotalWaste spread over every record in the input, not just this item's.
	DailyAverage int `json:"dailyAverage"`
}

// TopWasteItems groups records by item name, sums waste and returns the
// biggest offenders first. Equal totals keep first-seen order. A limit <= 0
// means DefaultTopLimit.
func TopWasteItems(records []models.DailyRecord, limit int) []ItemWaste {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	index := make(map[string]int)
	items := make([]ItemWaste, 0)
	for _, r := range records {
		i, ok := index[r.ItemName]
		if !ok {
			i = len(items)
			index[r.ItemName] = i
			items = append(items, ItemWaste{ItemName: r.ItemName})
		}
		items[i].TotalWaste += r.Waste
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].TotalWaste > items[b].TotalWaste
	})

	if len(items) > limit {
		items = items[:limit]
	}

	divisor := max(1, len(records))
	for i := range items {
		items[i].DailyAverage = floorDiv(items[i].TotalWaste, divisor)
	}
	return items
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
