package analytics

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"ecofeast-backend/internal/models"
)

const (
	// PrepBuffer is the safety margin applied on top of adjusted demand.
	PrepBuffer = 1.05

	MinCustomPercent = 50
	MaxCustomPercent = 200

	// Used for menu items that have no history yet.
	FallbackBaseDemand = 20
	FallbackBaseWaste  = 3
)

type Scenario struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Multiplier  float64 `json:"multiplier"`
}

var scenarios = []Scenario{
	{ID: "normal", Label: "Normal Day", Description: "Regular weekday traffic", Multiplier: 1.0},
	{ID: "weekend", Label: "Weekend Rush", Description: "+40% customer traffic", Multiplier: 1.4},
	{ID: "holiday", Label: "Holiday Special", Description: "+60% demand spike", Multiplier: 1.6},
	{ID: "rainy", Label: "Rainy Day", Description: "-20% footfall, +comfort food", Multiplier: 0.85},
	{ID: "event", Label: "Nearby Event", Description: "+80% surge expected", Multiplier: 1.8},
	{ID: "slow", Label: "Slow Monday", Description: "-25% expected traffic", Multiplier: 0.75},
}

// Scenarios returns a copy of the named scenario table.
func Scenarios() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

func ScenarioByID(id string) (Scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

// CustomMultiplier clamps a percentage to [50,200] and converts it to a factor.
func CustomMultiplier(percent float64) float64 {
	if percent < MinCustomPercent {
		percent = MinCustomPercent
	}
	if percent > MaxCustomPercent {
		percent = MaxCustomPercent
	}
	return percent / 100
}

var ErrUnknownScenario = errors.New("unknown scenario")

// ResolveMultiplier picks the demand factor for a what-if run. A custom
// percentage, when given, wins over the named scenario.
func ResolveMultiplier(scenarioID string, customPercent *float64) (float64, error) {
	if customPercent != nil {
		return CustomMultiplier(*customPercent), nil
	}
	if scenarioID == "" {
		scenarioID = "normal"
	}
	sc, ok := ScenarioByID(scenarioID)
	if !ok {
		return 0, ErrUnknownScenario
	}
	return sc.Multiplier, nil
}

// Baseline is the historical average for one menu item.
type Baseline struct {
	ItemID      string  `json:"itemId"`
	ItemName    string  `json:"itemName"`
	BaseDemand  int     `json:"baseDemand"`
	BaseWaste   int     `json:"baseWaste"`
	UnitPrice   float64 `json:"unitPrice"`
	CostPerUnit float64 `json:"costPerUnit"`
}

// Baselines averages sold and waste per menu item, joined on item name.
// Averages are rounded to whole units.
func Baselines(records []models.DailyRecord, menu []models.MenuItem) []Baseline {
	type acc struct{ sold, waste, count int }
	byName := make(map[string]*acc)
	for _, r := range records {
		a, ok := byName[r.ItemName]
		if !ok {
			a = &acc{}
			byName[r.ItemName] = a
		}
		a.sold += r.Sold
		a.waste += r.Waste
		a.count++
	}

	out := make([]Baseline, 0, len(menu))
	for _, item := range menu {
		b := Baseline{
			ItemID:      item.ID,
			ItemName:    item.Name,
			BaseDemand:  FallbackBaseDemand,
			BaseWaste:   FallbackBaseWaste,
			UnitPrice:   item.UnitPrice,
			CostPerUnit: item.CostPerUnit,
		}
		if a, ok := byName[item.Name]; ok && a.count > 0 {
			b.BaseDemand = int(roundHalfUp(float64(a.sold) / float64(a.count)))
			b.BaseWaste = int(roundHalfUp(float64(a.waste) / float64(a.count)))
		}
		out = append(out, b)
	}
	return out
}

type ItemProjection struct {
	Baseline
	AdjustedDemand int     `json:"adjustedDemand"`
	SuggestedPrep  int     `json:"suggestedPrep"`
	ExpectedWaste  int     `json:"expectedWaste"`
	Revenue        float64 `json:"revenue"`
	WasteCost      float64 `json:"wasteCost"`
	ChangePercent  int     `json:"changePercent"`
}

type Projection struct {
	Multiplier     float64          `json:"multiplier"`
	Items          []ItemProjection `json:"items"`
	TotalDemand    int              `json:"totalDemand"`
	TotalPrep      int              `json:"totalPrep"`
	TotalRevenue   float64          `json:"totalRevenue"`
	TotalWasteCost float64          `json:"totalWasteCost"`
}

// Project scales each baseline by multiplier and adds the prep buffer.
func Project(baselines []Baseline, multiplier float64) Projection {
	p := Projection{
		Multiplier: multiplier,
		Items:      make([]ItemProjection, 0, len(baselines)),
	}
	totalRevenue := decimal.Zero
	totalWasteCost := decimal.Zero

	for _, b := range baselines {
		adjusted := int(roundHalfUp(float64(b.BaseDemand) * multiplier))
		prep := int(roundHalfUp(float64(adjusted) * PrepBuffer))
		waste := prep - adjusted

		revenue := decimal.NewFromInt(int64(adjusted)).Mul(decimal.NewFromFloat(b.UnitPrice))
		wasteCost := decimal.NewFromInt(int64(waste)).Mul(decimal.NewFromFloat(b.CostPerUnit))

		var change int
		if b.BaseDemand != 0 {
			// Percent change ties round away from zero: -12.5 -> -13.
			change = int(math.Round(float64(adjusted-b.BaseDemand) / float64(b.BaseDemand) * 100))
		}

		p.Items = append(p.Items, ItemProjection{
			Baseline:       b,
			AdjustedDemand: adjusted,
			SuggestedPrep:  prep,
			ExpectedWaste:  waste,
			Revenue:        revenue.InexactFloat64(),
			WasteCost:      wasteCost.InexactFloat64(),
			ChangePercent:  change,
		})

		p.TotalDemand += adjusted
		p.TotalPrep += prep
		totalRevenue = totalRevenue.Add(revenue)
		totalWasteCost = totalWasteCost.Add(wasteCost)
	}

	p.TotalRevenue = totalRevenue.InexactFloat64()
	p.TotalWasteCost = totalWasteCost.InexactFloat64()
	return p
}
