package records

import (
	"errors"
	"fmt"
	"time"

	"ecofeast-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate   = errors.New("date must be formatted as YYYY-MM-DD")
	ErrNegativeCount = errors.New("prepared and sold must be non-negative")
)

// NewDailyRecord derives waste, revenue and loss from the menu item's unit
// economics at creation time. Waste is clamped at zero when more units were
// sold than prepared.
func NewDailyRecord(userID uint, date string, item models.MenuItem, prepared, sold int, now time.Time) (models.DailyRecord, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return models.DailyRecord{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if prepared < 0 || sold < 0 {
		return models.DailyRecord{}, ErrNegativeCount
	}

	waste := max(0, prepared-sold)
	revenue := decimal.NewFromInt(int64(sold)).Mul(decimal.NewFromFloat(item.UnitPrice))
	loss := decimal.NewFromInt(int64(waste)).Mul(decimal.NewFromFloat(item.CostPerUnit))

	return models.DailyRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      date,
		ItemID:    item.ID,
		ItemName:  item.Name,
		Prepared:  prepared,
		Sold:      sold,
		Waste:     waste,
		Revenue:   revenue.Round(2).InexactFloat64(),
		Loss:      loss.Round(2).InexactFloat64(),
		CreatedAt: now,
	}, nil
}
