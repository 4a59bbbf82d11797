package extraction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mvini0721/Ridetrack/models"
	"github.com/google/uuid"
)

// Rejection reasons, in the order the pipeline checks them. Each call
// resolves to exactly one; none are retried here.
var (
	ErrMalformedEmail   = errors.New("malformed email")
	ErrUnknownPlatform  = errors.New("platform not recognized")
	ErrNoFare           = errors.New("could not extract ride data")
	ErrUnknownRecipient = errors.New("user not found")
)

// UserResolver maps an inbound identity (public email or generated ingest
// address) to a user ID. It returns "" with a nil error when no user
// matches; a non-nil error means the lookup itself failed.
type UserResolver interface {
	ResolveIdentity(ctx context.Context, identity string) (string, error)
}

// Pipeline turns one raw receipt email into a persistable Ride. It is
// stateless and safe for concurrent use across emails; persistence is the
// caller's responsibility.
type Pipeline struct {
	registry *Registry
	users    UserResolver
	now      func() time.Time
}

func NewPipeline(registry *Registry, users UserResolver) *Pipeline {
	return &Pipeline{
		registry: registry,
		users:    users,
		now:      time.Now,
	}
}

// Process resolves a single email, terminal on the first rejection:
// parse the MIME message, detect the platform, extract a candidate,
// resolve the recipient to a user, then default the timestamp and attach
// the raw source. Recipient resolution runs only after extraction
// succeeds, so "not a receipt" and "receipt but misrouted" stay
// distinguishable to the caller.
func (p *Pipeline) Process(ctx context.Context, raw, recipient string) (*models.Ride, error) {
	email, err := ParseEmail(raw)
	if err != nil {
		return nil, err
	}

	parser := p.registry.Detect(email.From, email.Subject)
	if parser == nil {
		return nil, ErrUnknownPlatform
	}

	candidate, ok := parser.Extract(email.Text, email.FlatHTML())
	if !ok {
		return nil, ErrNoFare
	}

	userID, err := p.users.ResolveIdentity(ctx, recipient)
	if err != nil {
		return nil, fmt.Errorf("resolving recipient %q: %w", recipient, err)
	}
	if userID == "" {
		return nil, ErrUnknownRecipient
	}

	now := p.now().UTC()
	occurredAt := now
	if candidate.OccurredAt != nil {
		occurredAt = *candidate.OccurredAt
	}

	return &models.Ride{
		ID:          uuid.NewString(),
		UserID:      userID,
		Platform:    candidate.Platform,
		Value:       candidate.Value,
		Origin:      candidate.Origin,
		Destination: candidate.Destination,
		OccurredAt:  occurredAt,
		CreatedAt:   now,
		RawEmail:    raw,
	}, nil
}
