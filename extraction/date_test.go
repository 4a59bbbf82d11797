package extraction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractTextualDate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  time.Time
		found bool
	}{
		{
			name:  "plain date",
			in:    "Viagem realizada em 12 de março de 2024",
			want:  time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC),
			found: true,
		},
		{
			name:  "capitalized month",
			in:    "5 de Janeiro de 2023",
			want:  time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC),
			found: true,
		},
		{name: "unknown month name", in: "12 de blergh de 2024"},
		{name: "no date at all", in: "nenhuma data por aqui"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTextualDate(tt.in)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractNumericDate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  time.Time
		found bool
	}{
		{
			name:  "day month year",
			in:    "Corrida finalizada 12/03/2024 às 22:10",
			want:  time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC),
			found: true,
		},
		{
			name:  "single digit day and month",
			in:    "1/2/2024",
			want:  time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			found: true,
		},
		{name: "month out of range", in: "12/13/2024"},
		{name: "day out of range", in: "32/01/2024"},
		{name: "day zero", in: "0/01/2024"},
		{
			// In-range but impossible combination: time.Date normalizes
			// forward rather than rejecting.
			name:  "february thirtieth normalizes",
			in:    "30/02/2024",
			want:  time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			found: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractNumericDate(tt.in)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			}
		})
	}
}
