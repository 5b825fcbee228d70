// Package seed creates demo accounts with two months of plausible history so
// a fresh install has something to chart.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"ecofeast-backend/internal/auth"
	"ecofeast-backend/internal/models"
	"ecofeast-backend/internal/records"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const HistoryDays = 60

type DemoUser struct {
	Username string
	Password string
	Email    string
}

var DemoUsers = []DemoUser{
	{Username: "test@123", Password: "test123", Email: "test@example.com"},
	{Username: "test2", Password: "test123", Email: "test2@example.com"},
	{Username: "demo", Password: "demo123", Email: "demo@example.com"},
}

var baseDemand = map[string]float64{
	"1": 35, // burger
	"2": 18,
	"3": 12,
	"4": 15,
	"5": 22,
}

var wasteMultiplier = map[string]float64{
	"2": 1.15, // salad wilts
	"4": 1.05,
	"5": 1.12,
}

const (
	defaultBaseDemand      = 20
	defaultWasteMultiplier = 1.08
)

func dayMultiplier(d time.Weekday) float64 {
	switch d {
	case time.Saturday, time.Sunday:
		return 1.5
	case time.Friday:
		return 1.4
	case time.Monday:
		return 0.8
	default:
		return 1.0
	}
}

// GenerateHistory builds `days` days of records per menu item ending today.
// Dates and weekdays follow now's location.
func GenerateHistory(userID uint, menu []models.MenuItem, rng *rand.Rand, now time.Time, days int) ([]models.DailyRecord, error) {
	out := make([]models.DailyRecord, 0, days*len(menu))

	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		date := day.Format(records.DateLayout)
		createdAt, _ := time.Parse(records.DateLayout, date)
		mult := dayMultiplier(day.Weekday())

		for _, item := range menu {
			base, ok := baseDemand[item.ID]
			if !ok {
				base = defaultBaseDemand
			}
			wm, ok := wasteMultiplier[item.ID]
			if !ok {
				wm = defaultWasteMultiplier
			}

			random := 0.8 + rng.Float64()*0.4
			sold := int(math.Floor(base * mult * random))
			prepared := int(math.Ceil(float64(sold) * wm))

			rec, err := records.NewDailyRecord(userID, date, item, prepared, sold, createdAt)
			if err != nil {
				return nil, fmt.Errorf("generate %s on %s: %w", item.Name, date, err)
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

type Seeder struct {
	users   auth.Repository
	records records.Repository
	menu    []models.MenuItem
	rng     *rand.Rand
	now     func() time.Time
	log     *zap.Logger
}

func NewSeeder(users auth.Repository, recs records.Repository, menu []models.MenuItem, rng *rand.Rand, now func() time.Time, log *zap.Logger) *Seeder {
	return &Seeder{users: users, records: recs, menu: menu, rng: rng, now: now, log: log}
}

// Run creates missing demo users and gives history to those without records.
func (s *Seeder) Run(ctx context.Context) error {
	for _, du := range DemoUsers {
		user, err := s.ensureUser(ctx, du)
		if err != nil {
			return err
		}

		n, err := s.records.Count(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("count records for %s: %w", du.Username, err)
		}
		if n > 0 {
			continue
		}

		history, err := GenerateHistory(user.ID, s.menu, s.rng, s.now(), HistoryDays)
		if err != nil {
			return err
		}
		if err := s.records.CreateBatch(ctx, history); err != nil {
			return fmt.Errorf("insert history for %s: %w", du.Username, err)
		}
		s.log.Info("seeded demo history", zap.String("username", du.Username), zap.Int("records", len(history)))
	}
	return nil
}

func (s *Seeder) ensureUser(ctx context.Context, du DemoUser) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, du.Username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, auth.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup demo user %s: %w", du.Username, err)
	}

	user, err = auth.CreateUser(ctx, s.users, du.Username, du.Password, du.Email)
	if err != nil {
		return nil, fmt.Errorf("create demo user %s: %w", du.Username, err)
	}
	s.log.Info("seeded demo user", zap.String("username", du.Username))
	return user, nil
}

// POST /api/admin/seed
func RunHandler(s *Seeder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := s.Run(c.UserContext()); err != nil {
			s.log.Error("demo seed failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "unable to seed demo data")
		}
		return c.JSON(fiber.Map{"status": "seeded"})
	}
}
