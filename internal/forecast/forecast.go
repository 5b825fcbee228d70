package forecast

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ecofeast-backend/internal/llm"
	"ecofeast-backend/internal/models"
)

type Prediction struct {
	ItemID          string  `json:"itemId"`
	ItemName        string  `json:"itemName"`
	PredictedDemand float64 `json:"predictedDemand"`
	Confidence      float64 `json:"confidence"`
	Reasoning       string  `json:"reasoning"`
}

type Response struct {
	Predictions        []Prediction `json:"predictions"`
	OverallInsight     string       `json:"overallInsight"`
	SavingsOpportunity float64      `json:"savingsOpportunity"`
}

type Service struct {
	client llm.Client
	now    func() time.Time
}

func NewService(client llm.Client) *Service {
	return &Service{client: client, now: time.Now}
}

// Forecast asks the model for next-day demand per menu item.
func (s *Service) Forecast(ctx context.Context, history []models.DailyRecord, menu []models.MenuItem) (Response, error) {
	prompt := BuildPrompt(history, menu, s.now())

	var out Response
	if err := s.client.GenerateJSON(ctx, prompt, &out); err != nil {
		return Response{}, err
	}
	if out.Predictions == nil {
		return Response{}, fmt.Errorf("%w: predictions missing", llm.ErrMalformedReply)
	}

	out.Predictions = ReconcileItemIDs(out.Predictions, menu)
	return out, nil
}

// ReconcileItemIDs replaces each prediction's id with the id of the menu item
// whose name matches case-insensitively. Unmatched predictions keep the id the
// model returned.
func ReconcileItemIDs(predictions []Prediction, menu []models.MenuItem) []Prediction {
	out := make([]Prediction, len(predictions))
	for i, p := range predictions {
		out[i] = p
		for _, m := range menu {
			if strings.EqualFold(m.Name, p.ItemName) {
				out[i].ItemID = m.ID
				break
			}
		}
	}
	return out
}
