package chat

import (
	"fmt"
	"strings"

	"ecofeast-backend/internal/analytics"
	"ecofeast-backend/internal/auth"
	"ecofeast-backend/internal/llm"
	"ecofeast-backend/internal/records"

	"github.com/gofiber/fiber/v2"
)

// ContextRecords is how many recent records the assistant sees.
const ContextRecords = 100

type Request struct {
	Message string `json:"message"`
}

type Response struct {
	Response string `json:"response"`
}

func BuildPrompt(s analytics.ChatSummary, question string) string {
	avg := "0"
	if s.RecordCount > 0 {
		avg = analytics.FormatOneDecimal(s.AvgWastePerRecord)
	}

	lines := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		lines = append(lines, fmt.Sprintf("%s: %d wasted, %d sold (%d records)", it.ItemName, it.Waste, it.Sold, it.Count))
	}

	return fmt.Sprintf(`You are an AI assistant for EcoFeast, a food demand prediction platform for restaurants.
You help restaurant managers understand their waste patterns and improve efficiency.

RESTAURANT DATA CONTEXT:
- Total records analyzed: %d
- Total items sold: %d
- Total waste: %d units
- Total financial loss from waste: ₹%.2f
- Average waste per day: %s units

ITEM BREAKDOWN:
%s

USER QUESTION: %q

Provide a helpful, concise response. If asked about specific patterns, analyze the data.
If asked for recommendations, be specific and actionable.
Keep responses friendly and professional. Use emojis occasionally for warmth.
Format numbers nicely (e.g., ₹1,234 not 1234).
`, s.RecordCount, s.TotalSold, s.TotalWaste, s.TotalLoss, avg, strings.Join(lines, "\n"), question)
}

// POST /api/chat
func ChatHandler(repo records.Repository, client llm.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFrom(c)
		if err != nil {
			return err
		}

		var body Request
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid chat payload")
		}
		if strings.TrimSpace(body.Message) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "message is required")
		}
		if !client.Configured() {
			return llm.FiberError(llm.ErrMissingAPIKey, "")
		}

		recs, err := repo.ListRecent(c.UserContext(), userID, ContextRecords)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "unable to fetch records")
		}

		reply, err := client.GenerateText(c.UserContext(), BuildPrompt(analytics.SummarizeForChat(recs), body.Message))
		if err != nil {
			return llm.FiberError(err, "failed to get AI response")
		}
		return c.JSON(Response{Response: reply})
	}
}
