package analytics

import "ecofeast-backend/internal/models"

// Conversion factors behind the environmental estimates. They are
// illustrative, not measured.
const (
	MealWeightKg       = 0.4  // average portion weight
	WasteReductionRate = 0.35 // share of waste assumed avoidable with forecasting
	CO2KgPerFoodKg     = 2.5
	CarKmPerCO2Kg      = 4.0  // ~0.25 kg CO2 per km driven
	TreeCO2KgPerYear   = 21.0 // absorbed by one tree per year
	WaterLitersPerKg   = 100.0
)

type Impact struct {
	WasteUnits       int     `json:"wasteUnits"`
	WasteWeightKg    float64 `json:"wasteWeightKg"`
	FoodSavedKg      float64 `json:"foodSavedKg"`
	CO2PreventedKg   float64 `json:"co2PreventedKg"`
	CarKmEquivalent  float64 `json:"carKmEquivalent"`
	TreesEquivalent  float64 `json:"treesEquivalent"`
	WaterSavedLiters float64 `json:"waterSavedLiters"`
	EfficiencyScore  float64 `json:"efficiencyScore"` // 1 decimal, 0 when nothing prepared
}

func EstimateImpact(records []models.DailyRecord) Impact {
	var waste, prepared int
	for _, r := range records {
		waste += r.Waste
		prepared += r.Prepared
	}

	imp := ImpactFromUnits(waste)
	if prepared > 0 {
		imp.EfficiencyScore = Round1(float64(prepared-waste) / float64(prepared) * 100)
	}
	return imp
}

// ImpactFromUnits converts wasted units into the derived estimates.
func ImpactFromUnits(units int) Impact {
	weight := float64(units) * MealWeightKg
	saved := weight * WasteReductionRate
	co2 := saved * CO2KgPerFoodKg

	return Impact{
		WasteUnits:       units,
		WasteWeightKg:    weight,
		FoodSavedKg:      saved,
		CO2PreventedKg:   co2,
		CarKmEquivalent:  co2 * CarKmPerCO2Kg,
		TreesEquivalent:  co2 / TreeCO2KgPerYear,
		WaterSavedLiters: saved * WaterLitersPerKg,
	}
}
