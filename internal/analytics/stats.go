// Package analytics turns a list of daily records into the waste and
// efficiency figures shown on the dashboard. Every function is pure: it reads
// its input slice and returns a new value without side effects.
package analytics

import "ecofeast-backend/internal/models"

// AggregateStats holds full-precision totals. Percentages are rounded only by
// the Display helpers.
type AggregateStats struct {
	TotalWaste      int     `json:"totalWaste"`
	TotalLoss       float64 `json:"totalLoss"`
	TotalSold       int     `json:"totalSold"`
	TotalPrepared   int     `json:"totalPrepared"`
	WastePercentage float64 `json:"wastePercentage"`
	Efficiency      float64 `json:"efficiency"`
}

// ComputeStats folds records into totals. wastePercentage is 0 (never NaN)
// when nothing was prepared, so empty input yields efficiency 100.
func ComputeStats(records []models.DailyRecord) AggregateStats {
	var s AggregateStats
	for _, r := range records {
		s.TotalWaste += r.Waste
		s.TotalLoss += r.Loss
		s.TotalSold += r.Sold
		s.TotalPrepared += r.Prepared
	}

	s.WastePercentage = percentage(float64(s.TotalWaste), float64(s.TotalPrepared))
	s.Efficiency = 100 - s.WastePercentage
	return s
}

func (s AggregateStats) WastePercentageDisplay() string {
	return FormatOneDecimal(s.WastePercentage)
}

func (s AggregateStats) EfficiencyDisplay() string {
	return FormatOneDecimal(s.Efficiency)
}
