package stats

import (
	"testing"
	"time"

	"github.com/Mvini0721/Ridetrack/models"
	"github.com/stretchr/testify/assert"
)

func ride(value float64, occurredAt time.Time) models.Ride {
	return models.Ride{Platform: models.PlatformUber, Value: value, OccurredAt: occurredAt}
}

func TestSummarize_EmptySet(t *testing.T) {
	s := Summarize(nil, time.Now())

	assert.Zero(t, s.Total)
	assert.Zero(t, s.Count)
	assert.Zero(t, s.Average, "average of an empty set must be 0, not an error")
	assert.Zero(t, s.MonthTotal)
	assert.Zero(t, s.MonthCount)
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	rides := []models.Ride{
		ride(10, time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)),
		ride(20, time.Date(2024, time.June, 30, 23, 59, 0, 0, time.UTC)),
		ride(30, time.Date(2024, time.May, 15, 8, 0, 0, 0, time.UTC)),
		// Same month, previous year: excluded from the month subset.
		ride(40, time.Date(2023, time.June, 15, 8, 0, 0, 0, time.UTC)),
	}

	s := Summarize(rides, now)

	assert.InDelta(t, 100, s.Total, 1e-9)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 25, s.Average, 1e-9)
	assert.InDelta(t, 30, s.MonthTotal, 1e-9)
	assert.Equal(t, 2, s.MonthCount)
}
