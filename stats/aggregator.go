package stats

import (
	"time"

	"github.com/Mvini0721/Ridetrack/models"
)

// Summary aggregates a user's rides: overall totals plus the subset that
// occurred in the current calendar month.
type Summary struct {
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Average    float64 `json:"average"`
	MonthTotal float64 `json:"month_total"`
	MonthCount int     `json:"month_count"`
}

// Summarize is a pure function of the ride set and now. The month subset
// compares month and year of each ride's occurred_at against now. Average
// is 0 for an empty set.
func Summarize(rides []models.Ride, now time.Time) Summary {
	var s Summary
	for _, ride := range rides {
		s.Total += ride.Value
		s.Count++
		if ride.OccurredAt.Month() == now.Month() && ride.OccurredAt.Year() == now.Year() {
			s.MonthTotal += ride.Value
			s.MonthCount++
		}
	}
	if s.Count > 0 {
		s.Average = s.Total / float64(s.Count)
	}
	return s
}
