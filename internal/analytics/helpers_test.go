package analytics

import "ecofeast-backend/internal/models"

func rec(date, name string, prepared, sold int) models.DailyRecord {
	waste := max(0, prepared-sold)
	return models.DailyRecord{
		Date:     date,
		ItemID:   name,
		ItemName: name,
		Prepared: prepared,
		Sold:     sold,
		Waste:    waste,
	}
}

var testMenu = []models.MenuItem{
	{ID: "1", Name: "Signature Burger", Category: "Main", UnitPrice: 15, CostPerUnit: 6},
	{ID: "2", Name: "Quinoa Salad", Category: "Appetizer", UnitPrice: 12, CostPerUnit: 4},
}
