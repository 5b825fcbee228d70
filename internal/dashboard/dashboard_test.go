package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecofeast-backend/internal/analytics"
	"ecofeast-backend/internal/auth"
	"ecofeast-backend/internal/logger"
	"ecofeast-backend/internal/menu"
	"ecofeast-backend/internal/records"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	catalog := menu.Default()
	repo := records.NewInMemoryRepository()

	add := func(date, itemID string, prepared, sold int) {
		item, ok := catalog.ByID(itemID)
		require.True(t, ok)
		rec, err := records.NewDailyRecord(1, date, item, prepared, sold, time.Now())
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), &rec))
	}
	add("2025-12-06", "1", 50, 45) // Saturday
	add("2025-12-08", "2", 30, 28) // Monday

	app := fiber.New(fiber.Config{ErrorHandler: logger.ErrorHandler(zap.NewNop())})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, uint(1))
		return c.Next()
	})
	app.Get("/summary", SummaryHandler(repo))
	app.Get("/trend", TrendHandler(repo))
	app.Get("/weekday", WeekdayHandler(repo))
	app.Get("/categories", CategoriesHandler(repo))
	app.Get("/impact", ImpactHandler(repo))
	app.Get("/scenarios", ScenariosHandler())
	app.Post("/what-if", WhatIfHandler(repo, catalog))
	return app
}

func getJSON(t *testing.T, app *fiber.App, req *http.Request, dest any) int {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	if resp.StatusCode == fiber.StatusOK && dest != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
	}
	return resp.StatusCode
}

func TestSummaryHandler(t *testing.T) {
	app := newApp(t)

	var out SummaryResponse
	status := getJSON(t, app, httptest.NewRequest("GET", "/summary", nil), &out)
	require.Equal(t, fiber.StatusOK, status)

	assert.Equal(t, 7, out.Stats.TotalWaste)
	assert.InDelta(t, 38.0, out.Stats.TotalLoss, 1e-9)
	assert.Equal(t, "8.8", out.WastePercentageDisplay)
	assert.Equal(t, "91.3", out.EfficiencyDisplay)
	require.Len(t, out.TopWasteItems, 2)
	assert.Equal(t, analytics.ItemWaste{ItemName: "Signature Burger", TotalWaste: 5, DailyAverage: 2}, out.TopWasteItems[0])
	assert.Len(t, out.Trend, 2)
	assert.Equal(t, 2, out.RecordCount)

	status = getJSON(t, app, httptest.NewRequest("GET", "/summary?limit=1", nil), &out)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, out.TopWasteItems, 1)

	for _, q := range []string{"-2", "0", "5abc", "2.5"} {
		status = getJSON(t, app, httptest.NewRequest("GET", "/summary?limit="+q, nil), nil)
		assert.Equal(t, fiber.StatusBadRequest, status, "limit=%s", q)
	}
}

func TestTrendHandler(t *testing.T) {
	app := newApp(t)

	var out []analytics.DailyTotals
	status := getJSON(t, app, httptest.NewRequest("GET", "/trend?days=1", nil), &out)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, out, 1)
	assert.Equal(t, "2025-12-08", out[0].Date)

	for _, q := range []string{"abc", "7x"} {
		status = getJSON(t, app, httptest.NewRequest("GET", "/trend?days="+q, nil), nil)
		assert.Equal(t, fiber.StatusBadRequest, status, "days=%s", q)
	}
}

func TestWeekdayHandler(t *testing.T) {
	app := newApp(t)

	var out []analytics.WeekdayBucket
	status := getJSON(t, app, httptest.NewRequest("GET", "/weekday", nil), &out)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, out, 7)
	assert.Equal(t, "Saturday", out[6].Name)
	assert.Equal(t, 5, out[6].Waste)
	assert.InDelta(t, 90.0, out[6].Efficiency, 1e-9)
	assert.InDelta(t, 93.3, out[1].Efficiency, 1e-9)

	status = getJSON(t, app, httptest.NewRequest("GET", "/weekday?tz=America/New_York", nil), &out)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 5, out[5].Waste, "Saturday midnight UTC is Friday evening in New York")

	status = getJSON(t, app, httptest.NewRequest("GET", "/weekday?tz=Mars/Olympus", nil), nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCategoriesAndImpact(t *testing.T) {
	app := newApp(t)

	var cats []analytics.CategoryWaste
	require.Equal(t, fiber.StatusOK, getJSON(t, app, httptest.NewRequest("GET", "/categories", nil), &cats))
	assert.Equal(t, []analytics.CategoryWaste{{Name: "Main", Value: 5}, {Name: "Appetizer", Value: 2}, {Name: "Breakfast", Value: 0}}, cats)

	var imp analytics.Impact
	require.Equal(t, fiber.StatusOK, getJSON(t, app, httptest.NewRequest("GET", "/impact", nil), &imp))
	assert.Equal(t, 7, imp.WasteUnits)
	assert.InDelta(t, 91.3, imp.EfficiencyScore, 1e-9)

	var scs []analytics.Scenario
	require.Equal(t, fiber.StatusOK, getJSON(t, app, httptest.NewRequest("GET", "/scenarios", nil), &scs))
	assert.Len(t, scs, 6)
}

func postWhatIf(body string) *http.Request {
	req := httptest.NewRequest("POST", "/what-if", strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestWhatIfHandler(t *testing.T) {
	app := newApp(t)

	var p analytics.Projection
	require.Equal(t, fiber.StatusOK, getJSON(t, app, postWhatIf(`{"scenario":"weekend"}`), &p))
	require.Len(t, p.Items, 5)
	assert.Equal(t, 63, p.Items[0].AdjustedDemand)
	assert.Equal(t, 66, p.Items[0].SuggestedPrep)
	assert.Equal(t, 39, p.Items[1].AdjustedDemand)
	assert.Equal(t, 28, p.Items[2].AdjustedDemand)
	assert.Equal(t, 29, p.Items[2].SuggestedPrep)

	require.Equal(t, fiber.StatusOK, getJSON(t, app, postWhatIf(`{"customPercent":250}`), &p))
	assert.InDelta(t, 2.0, p.Multiplier, 1e-9)

	require.Equal(t, fiber.StatusOK, getJSON(t, app, postWhatIf(""), &p))
	assert.InDelta(t, 1.0, p.Multiplier, 1e-9)

	assert.Equal(t, fiber.StatusBadRequest, getJSON(t, app, postWhatIf(`{"scenario":"blizzard"}`), nil))
}
