package forecast

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecofeast-backend/internal/llm"
	"ecofeast-backend/internal/logger"
	"ecofeast-backend/internal/menu"
	"ecofeast-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubClient struct {
	reply  string
	err    error
	prompt string
}

func (s *stubClient) Configured() bool { return true }

func (s *stubClient) GenerateText(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

func (s *stubClient) GenerateJSON(ctx context.Context, prompt string, dest any) error {
	text, err := s.GenerateText(ctx, prompt)
	if err != nil {
		return err
	}
	return llm.DecodeJSON(text, dest)
}

func history(n int) []models.DailyRecord {
	out := make([]models.DailyRecord, n)
	for i := range out {
		out[i] = models.DailyRecord{
			Date:     time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i).Format("2006-01-02"),
			ItemName: "Signature Burger",
			Prepared: 40 + i,
			Sold:     30 + i,
		}
	}
	return out
}

func TestBuildPrompt(t *testing.T) {
	today := time.Date(2025, 12, 9, 10, 0, 0, 0, time.UTC)
	p := BuildPrompt(history(40), menu.Default().Items(), today)

	assert.Contains(t, p, "Today is 2025-12-09")
	assert.Equal(t, HistoryWindow, strings.Count(p, "Date: "))
	assert.NotContains(t, p, "Sold: 34,")
	assert.Contains(t, p, "Date: 2025-11-09, Item: Signature Burger, Sold: 69, Prepared: 79")
	assert.Contains(t, p, "- Quinoa Salad (Cost: ₹4)")
}

func TestReconcileItemIDs(t *testing.T) {
	preds := []Prediction{
		{ItemID: "burger", ItemName: "signature BURGER"},
		{ItemID: "x9", ItemName: "Mystery Stew"},
	}
	got := ReconcileItemIDs(preds, menu.Default().Items())
	assert.Equal(t, "1", got[0].ItemID)
	assert.Equal(t, "x9", got[1].ItemID)
	assert.Equal(t, "burger", preds[0].ItemID)
}

func newApp(client llm.Client) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: logger.ErrorHandler(zap.NewNop())})
	app.Post("/forecast", ForecastHandler(NewService(client)))
	return app
}

func postForecast(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/forecast", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func requestBody(t *testing.T) string {
	t.Helper()
	b, err := json.Marshal(Request{History: history(3), Menu: menu.Default().Items()})
	require.NoError(t, err)
	return string(b)
}

func TestForecastHandler(t *testing.T) {
	stub := &stubClient{reply: "```json\n" + `{"predictions":[{"itemId":"a","itemName":"Truffle Pasta","predictedDemand":14,"confidence":0.8,"reasoning":"steady"}],"overallInsight":"prep less pasta","savingsOpportunity":120}` + "\n```"}
	status, out := postForecast(t, newApp(stub), requestBody(t))

	require.Equal(t, fiber.StatusOK, status)
	preds := out["predictions"].([]any)
	require.Len(t, preds, 1)
	assert.Equal(t, "3", preds[0].(map[string]any)["itemId"])
	assert.Equal(t, "prep less pasta", out["overallInsight"])
	assert.Contains(t, stub.prompt, "Truffle Pasta")
}

func TestForecastHandlerErrors(t *testing.T) {
	tests := []struct {
		name   string
		client *stubClient
		body   string
		want   int
	}{
		{"missing history", &stubClient{}, `{"menu":[{"id":"1","name":"x"}]}`, fiber.StatusBadRequest},
		{"missing menu", &stubClient{}, `{"history":[{"date":"2025-12-01"}]}`, fiber.StatusBadRequest},
		{"no key", &stubClient{err: llm.ErrMissingAPIKey}, "", fiber.StatusInternalServerError},
		{"quota", &stubClient{err: llm.ErrQuotaExceeded}, "", fiber.StatusTooManyRequests},
		{"unparseable", &stubClient{reply: "I think 12 burgers"}, "", fiber.StatusBadGateway},
		{"no predictions", &stubClient{reply: `{"overallInsight":"?"}`}, "", fiber.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			if body == "" {
				body = requestBody(t)
			}
			status, out := postForecast(t, newApp(tt.client), body)
			assert.Equal(t, tt.want, status)
			assert.NotEmpty(t, out["error"])
		})
	}
}
