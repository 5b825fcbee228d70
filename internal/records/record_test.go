package records

import (
	"context"
	"testing"
	"time"

	"ecofeast-backend/internal/menu"
	"ecofeast-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func burger(t *testing.T) models.MenuItem {
	t.Helper()
	item, ok := menu.Default().ByID("1")
	require.True(t, ok)
	return item
}

func TestNewDailyRecord(t *testing.T) {
	now := time.Date(2025, 12, 9, 20, 0, 0, 0, time.UTC)

	rec, err := NewDailyRecord(3, "2025-12-09", burger(t), 40, 32, now)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, uint(3), rec.UserID)
	assert.Equal(t, "Signature Burger", rec.ItemName)
	assert.Equal(t, 8, rec.Waste)
	assert.InDelta(t, 480.0, rec.Revenue, 1e-9)
	assert.InDelta(t, 48.0, rec.Loss, 1e-9)
	assert.Equal(t, now, rec.CreatedAt)
}

func TestNewDailyRecordClampsWaste(t *testing.T) {
	rec, err := NewDailyRecord(1, "2025-12-09", burger(t), 10, 12, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Waste)
	assert.Zero(t, rec.Loss)
}

func TestNewDailyRecordValidation(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		prepared int
		sold     int
		want     error
	}{
		{"bad date", "09/12/2025", 1, 1, ErrInvalidDate},
		{"empty date", "", 1, 1, ErrInvalidDate},
		{"negative prepared", "2025-12-09", -1, 0, ErrNegativeCount},
		{"negative sold", "2025-12-09", 1, -2, ErrNegativeCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDailyRecord(1, tt.date, burger(t), tt.prepared, tt.sold, time.Now())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInMemoryRepositorySameTimestampOrdersByDate(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	imported := time.Date(2025, 12, 10, 9, 0, 0, 0, time.UTC)

	var batch []models.DailyRecord
	for _, date := range []string{"2025-12-03", "2025-12-07", "2025-12-01", "2025-12-05"} {
		rec, err := NewDailyRecord(1, date, burger(t), 10, 5, imported)
		require.NoError(t, err)
		batch = append(batch, rec)
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	got, err := repo.ListRecent(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-12-07", got[0].Date)
	assert.Equal(t, "2025-12-05", got[1].Date)
}

func TestInMemoryRepositoryNewestFirst(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	base := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		rec, err := NewDailyRecord(1, "2025-12-01", burger(t), 10, 5, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, &rec))
	}
	other, _ := NewDailyRecord(2, "2025-12-01", burger(t), 1, 1, base)
	require.NoError(t, repo.Create(ctx, &other))

	got, err := repo.ListRecent(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, base.Add(4*time.Hour), got[0].CreatedAt)
	assert.Equal(t, base.Add(2*time.Hour), got[2].CreatedAt)

	n, err := repo.Count(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}
