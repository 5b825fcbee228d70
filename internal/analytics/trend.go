package analytics

import (
	"sort"

	"ecofeast-backend/internal/models"
)

const DefaultTrendDays = 7

type DailyTotals struct {
	Date     string `json:"date"`
	Prepared int    `json:"prepared"`
	Sold     int    `json:"sold"`
	Waste    int    `json:"waste"`
}

// DailyTrend sums records per date and returns the last `days` dates in
// ascending order.
func DailyTrend(records []models.DailyRecord, days int) []DailyTotals {
	if days <= 0 {
		days = DefaultTrendDays
	}

	byDate := make(map[string]*DailyTotals)
	for _, r := range records {
		d, ok := byDate[r.Date]
		if !ok {
			d = &DailyTotals{Date: r.Date}
			byDate[r.Date] = d
		}
		d.Prepared += r.Prepared
		d.Sold += r.Sold
		d.Waste += r.Waste
	}

	out := make([]DailyTotals, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, *d)
	}
	// YYYY-MM-DD sorts lexically in date order
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })

	if len(out) > days {
		out = out[len(out)-days:]
	}
	return out
}
