package analytics

import (
	"time"

	"ecofeast-backend/internal/models"
)

const DateLayout = "2006-01-02"

type WeekdayBucket struct {
	Name       string  `json:"name"`
	Waste      int     `json:"waste"`
	Total      int     `json:"total"` // prepared units
	Efficiency float64 `json:"efficiency"`
}

// ByDayOfWeek buckets records Sunday..Saturday by the calendar weekday of
// their date. Records whose date does not parse are skipped.
func ByDayOfWeek(records []models.DailyRecord) [7]WeekdayBucket {
	return byDayOfWeek(records, nil)
}

// ByDayOfWeekIn reads each date as UTC midnight and takes the weekday as seen
// from loc. West of UTC this lands on the previous day; it exists to
// reproduce dashboards that parse date-only strings that way.
func ByDayOfWeekIn(records []models.DailyRecord, loc *time.Location) [7]WeekdayBucket {
	return byDayOfWeek(records, loc)
}

func byDayOfWeek(records []models.DailyRecord, loc *time.Location) [7]WeekdayBucket {
	var buckets [7]WeekdayBucket
	for d := time.Sunday; d <= time.Saturday; d++ {
		buckets[d].Name = d.String()
	}

	for _, r := range records {
		t, err := time.Parse(DateLayout, r.Date)
		if err != nil {
			continue
		}
		if loc != nil {
			t = t.In(loc)
		}
		b := &buckets[t.Weekday()]
		b.Waste += r.Waste
		b.Total += r.Prepared
	}

	for i := range buckets {
		b := &buckets[i]
		if b.Total > 0 {
			b.Efficiency = Round1(float64(b.Total-b.Waste) / float64(b.Total) * 100)
		}
	}
	return buckets
}
