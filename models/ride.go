package models

import "time"

// Platform identifies which ride-hailing service issued a receipt.
type Platform string

const (
	PlatformUber       Platform = "uber"
	PlatformNinetyNine Platform = "99"
	PlatformUnknown    Platform = "unknown"
)

// Valid reports whether p is one of the supported platform tags.
func (p Platform) Valid() bool {
	return p == PlatformUber || p == PlatformNinetyNine
}

// Ride is one extracted (or manually entered) ride receipt.
// Platform and Value are always present; Origin, Destination and the
// extracted timestamp are best-effort. OccurredAt is defaulted to the
// ingestion time before persistence, so it is never zero in storage.
type Ride struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Platform    Platform  `json:"platform"`
	Value       float64   `json:"value"`
	Origin      string    `json:"origin,omitempty"`
	Destination string    `json:"destination,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	CreatedAt   time.Time `json:"created_at"`
	// RawEmail keeps the original message verbatim so a ride can always
	// be reprocessed without any external dependency.
	RawEmail string `json:"-"`
}
