package analytics

import (
	"testing"

	"ecofeast-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestInferCategory(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"Signature Burger", "Main", true},
		{"Truffle Pasta", "Main", true},
		{"Grilled Salmon", "Main", true},
		{"Quinoa Salad", "Appetizer", true},
		{"Avocado Toast", "Breakfast", true},
		{"avocado toast", "", false},
		{"Mystery Box", "", false},
	}
	for _, tt := range tests {
		got, ok := InferCategory(tt.name)
		assert.Equal(t, tt.wantOK, ok, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestByCategoryDropsUnmatched(t *testing.T) {
	records := []models.DailyRecord{
		rec("2024-01-01", "Signature Burger", 10, 5),
		rec("2024-01-01", "Truffle Pasta", 10, 8),
		rec("2024-01-01", "Quinoa Salad", 10, 9),
		rec("2024-01-01", "Mystery Box", 20, 10),
		{ItemName: "Avocado Toast", Waste: -4},
	}

	got := ByCategory(records)

	assert.Equal(t, []CategoryWaste{
		{Name: "Main", Value: 7},
		{Name: "Appetizer", Value: 1},
		{Name: "Breakfast", Value: 0},
	}, got)

	total := 0
	for _, c := range got {
		assert.GreaterOrEqual(t, c.Value, 0)
		total += c.Value
	}
	assert.Equal(t, 8, total)
}
