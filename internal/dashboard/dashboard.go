package dashboard

import (
	"fmt"
	"strconv"
	"time"

	"ecofeast-backend/internal/analytics"
	"ecofeast-backend/internal/auth"
	"ecofeast-backend/internal/menu"
	"ecofeast-backend/internal/models"
	"ecofeast-backend/internal/records"

	"github.com/gofiber/fiber/v2"
)

type SummaryResponse struct {
	Stats                  analytics.AggregateStats `json:"stats"`
	WastePercentageDisplay string                   `json:"wastePercentageDisplay"`
	EfficiencyDisplay      string                   `json:"efficiencyDisplay"`
	TopWasteItems          []analytics.ItemWaste    `json:"topWasteItems"`
	Trend                  []analytics.DailyTotals  `json:"trend"`
	RecordCount            int                      `json:"recordCount"`
}

type WhatIfRequest struct {
	Scenario      string   `json:"scenario"`
	CustomPercent *float64 `json:"customPercent"`
}

// loadRecords fetches the caller's most recent records, newest first.
func loadRecords(c *fiber.Ctx, repo records.Repository) ([]models.DailyRecord, error) {
	userID, err := auth.UserIDFrom(c)
	if err != nil {
		return nil, err
	}
	recs, err := repo.ListRecent(c.UserContext(), userID, records.MaxListed)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "unable to fetch records")
	}
	return recs, nil
}

// positiveQuery parses an optional positive integer query parameter.
func positiveQuery(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, key+" must be a positive integer")
	}
	return n, nil
}

// GET /api/analytics/summary?limit=5
func SummaryHandler(repo records.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := positiveQuery(c, "limit", analytics.DefaultTopLimit)
		if err != nil {
			return err
		}
		recs, err := loadRecords(c, repo)
		if err != nil {
			return err
		}

		stats := analytics.ComputeStats(recs)
		return c.JSON(SummaryResponse{
			Stats:                  stats,
			WastePercentageDisplay: stats.WastePercentageDisplay(),
			EfficiencyDisplay:      stats.EfficiencyDisplay(),
			TopWasteItems:          analytics.TopWasteItems(recs, limit),
			Trend:                  analytics.DailyTrend(recs, analytics.DefaultTrendDays),
			RecordCount:            len(recs),
		})
	}
}

// GET /api/analytics/trend?days=14
func TrendHandler(repo records.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		days, err := positiveQuery(c, "days", analytics.DefaultTrendDays)
		if err != nil {
			return err
		}
		recs, err := loadRecords(c, repo)
		if err != nil {
			return err
		}
		return c.JSON(analytics.DailyTrend(recs, days))
	}
}

// GET /api/analytics/weekday?tz=Asia/Kolkata
//
// Without tz the weekday is the calendar weekday of each record's date.
func WeekdayHandler(repo records.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var loc *time.Location
		if tz := c.Query("tz"); tz != "" {
			l, err := time.LoadLocation(tz)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown time zone %q", tz))
			}
			loc = l
		}

		recs, err := loadRecords(c, repo)
		if err != nil {
			return err
		}

		var buckets [7]analytics.WeekdayBucket
		if loc != nil {
			buckets = analytics.ByDayOfWeekIn(recs, loc)
		} else {
			buckets = analytics.ByDayOfWeek(recs)
		}
		return c.JSON(buckets[:])
	}
}

// GET /api/analytics/categories
func CategoriesHandler(repo records.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := loadRecords(c, repo)
		if err != nil {
			return err
		}
		return c.JSON(analytics.ByCategory(recs))
	}
}

// GET /api/analytics/impact
func ImpactHandler(repo records.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := loadRecords(c, repo)
		if err != nil {
			return err
		}
		return c.JSON(analytics.EstimateImpact(recs))
	}
}

// GET /api/analytics/scenarios
func ScenariosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(analytics.Scenarios())
	}
}

// POST /api/analytics/what-if
func WhatIfHandler(repo records.Repository, catalog *menu.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body WhatIfRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid what-if payload")
			}
		}

		multiplier, err := analytics.ResolveMultiplier(body.Scenario, body.CustomPercent)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown scenario %q", body.Scenario))
		}

		recs, err := loadRecords(c, repo)
		if err != nil {
			return err
		}

		baselines := analytics.Baselines(recs, catalog.Items())
		return c.JSON(analytics.Project(baselines, multiplier))
	}
}
