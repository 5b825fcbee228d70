package menu

import (
	"ecofeast-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

var defaultItems = []models.MenuItem{
	{ID: "1", Name: "Signature Burger", Category: "Main", UnitPrice: 15, CostPerUnit: 6},
	{ID: "2", Name: "Quinoa Salad", Category: "Appetizer", UnitPrice: 12, CostPerUnit: 4},
	{ID: "3", Name: "Truffle Pasta", Category: "Main", UnitPrice: 22, CostPerUnit: 9},
	{ID: "4", Name: "Grilled Salmon", Category: "Main", UnitPrice: 25, CostPerUnit: 12},
	{ID: "5", Name: "Avocado Toast", Category: "Breakfast", UnitPrice: 14, CostPerUnit: 5},
}

// Catalog is read-only reference data shared by handlers.
type Catalog struct {
	items []models.MenuItem
}

func NewCatalog(items []models.MenuItem) *Catalog {
	cp := make([]models.MenuItem, len(items))
	copy(cp, items)
	return &Catalog{items: cp}
}

// Default returns the restaurant's built-in menu.
func Default() *Catalog {
	return NewCatalog(defaultItems)
}

func (c *Catalog) Items() []models.MenuItem {
	cp := make([]models.MenuItem, len(c.items))
	copy(cp, c.items)
	return cp
}

func (c *Catalog) ByID(id string) (models.MenuItem, bool) {
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.MenuItem{}, false
}

// GET /api/menu
func ListMenuHandler(c *Catalog) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(c.Items())
	}
}
