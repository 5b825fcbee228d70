package audit

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"ecofeast-backend/internal/auth"
	"ecofeast-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLogMarshalsAfter(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, WriteLog(ctx, store, LogOptions{
		UserID:     7,
		EntityType: "daily_record",
		EntityID:   "abc",
		Action:     models.AuditActionCreate,
		After:      map[string]int{"sold": 45},
	}))
	require.NoError(t, WriteLog(ctx, store, LogOptions{UserID: 7, EntityType: "import", Action: models.AuditActionImport}))

	logs, err := store.ListByUser(ctx, 7, "", 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "null", logs[0].AfterData)
	assert.JSONEq(t, `{"sold":45}`, logs[1].AfterData)

	filtered, _ := store.ListByUser(ctx, 7, "daily_record", 10)
	assert.Len(t, filtered, 1)

	other, _ := store.ListByUser(ctx, 8, "", 10)
	assert.Empty(t, other)
}

func TestListAuditLogsHandler(t *testing.T) {
	store := NewMemoryStore()
	for i := 0; i < 3; i++ {
		_ = WriteLog(context.Background(), store, LogOptions{UserID: 1, UserName: "demo", EntityType: "daily_record", Action: models.AuditActionCreate})
	}

	app := fiber.New()
	app.Get("/audit-logs", func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, uint(1))
		return c.Next()
	}, ListAuditLogsHandler(store))

	resp, err := app.Test(httptest.NewRequest("GET", "/audit-logs", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []AuditLogResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 3)
	assert.Equal(t, uint(3), out[0].ID)
	assert.Equal(t, "demo", out[0].UserName)
}
