package analytics

import (
	"testing"

	"ecofeast-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestImpactFromUnits(t *testing.T) {
	imp := ImpactFromUnits(100)

	assert.InDelta(t, 40.0, imp.WasteWeightKg, 1e-9)
	assert.InDelta(t, 14.0, imp.FoodSavedKg, 1e-9)
	assert.InDelta(t, 35.0, imp.CO2PreventedKg, 1e-9)
	assert.InDelta(t, 140.0, imp.CarKmEquivalent, 1e-9)
	assert.InDelta(t, 1.67, imp.TreesEquivalent, 0.005)
	assert.InDelta(t, 1400.0, imp.WaterSavedLiters, 1e-6)
}

func TestEstimateImpact(t *testing.T) {
	records := []models.DailyRecord{
		rec("2024-01-01", "A", 50, 45),
		rec("2024-01-01", "B", 30, 28),
	}

	imp := EstimateImpact(records)

	assert.Equal(t, 7, imp.WasteUnits)
	assert.InDelta(t, 7*0.4*0.35, imp.FoodSavedKg, 1e-9)
	assert.Equal(t, 91.3, imp.EfficiencyScore)

	empty := EstimateImpact(nil)
	assert.Equal(t, 0.0, empty.CO2PreventedKg)
	assert.Equal(t, 0.0, empty.EfficiencyScore)
}
