package forecast

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ecofeast-backend/internal/models"
)

// HistoryWindow is how many trailing history rows go into the prompt.
const HistoryWindow = 35

func BuildPrompt(history []models.DailyRecord, menu []models.MenuItem, today time.Time) string {
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}

	var hist strings.Builder
	for i, h := range history {
		if i > 0 {
			hist.WriteByte('\n')
		}
		fmt.Fprintf(&hist, "Date: %s, Item: %s, Sold: %d, Prepared: %d", h.Date, h.ItemName, h.Sold, h.Prepared)
	}

	var items strings.Builder
	for i, m := range menu {
		if i > 0 {
			items.WriteByte('\n')
		}
		fmt.Fprintf(&items, "- %s (Cost: ₹%s)", m.Name, strconv.FormatFloat(m.CostPerUnit, 'f', -1, 64))
	}

	return fmt.Sprintf(`Analyze the following historical restaurant sales data and provide a food demand forecast for the NEXT day.
Context:
- Today is %s
- Consider patterns like weekend vs weekday.
- Aim to minimize waste (Prepared - Sold) while ensuring demand is met.

Historical Data:
%s

Menu Items for Prediction:
%s

Respond ONLY with valid JSON in this exact format (no markdown, no extra text):
{
  "predictions": [
    {
      "itemId": "string",
      "itemName": "string",
      "predictedDemand": number,
      "confidence": number (0-1),
      "reasoning": "string"
    }
  ],
  "overallInsight": "string",
  "savingsOpportunity": number
}
`, today.Format("2006-01-02"), hist.String(), items.String())
}
