package analytics

import "ecofeast-backend/internal/models"

type ItemBreakdown struct {
	ItemName string
	Waste    int
	Sold     int
	Count    int
}

// ChatSummary is the pre-aggregated view of a user's records handed to the
// chat assistant.
type ChatSummary struct {
	RecordCount       int
	TotalSold         int
	TotalWaste        int
	TotalLoss         float64
	AvgWastePerRecord float64 // one decimal
	Items             []ItemBreakdown
}

// SummarizeForChat keeps items in first-seen order.
func SummarizeForChat(records []models.DailyRecord) ChatSummary {
	s := ChatSummary{RecordCount: len(records)}
	index := make(map[string]int)

	for _, r := range records {
		s.TotalSold += r.Sold
		s.TotalWaste += r.Waste
		s.TotalLoss += r.Loss

		i, ok := index[r.ItemName]
		if !ok {
			i = len(s.Items)
			index[r.ItemName] = i
			s.Items = append(s.Items, ItemBreakdown{ItemName: r.ItemName})
		}
		s.Items[i].Waste += r.Waste
		s.Items[i].Sold += r.Sold
		s.Items[i].Count++
	}

	if s.RecordCount > 0 {
		s.AvgWastePerRecord = Round1(float64(s.TotalWaste) / float64(s.RecordCount))
	}
	return s
}
