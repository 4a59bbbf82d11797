package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Mvini0721/Ridetrack/models"
	"github.com/Mvini0721/Ridetrack/webutil"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrRideNotFound = errors.New("ride not found")
	// ErrDuplicateRide means the same raw email was already ingested for
	// this user. Extraction is idempotent; the store decides duplicates.
	ErrDuplicateRide = errors.New("ride already recorded")
	// ErrUserMissing surfaces a foreign key violation on insert. The
	// pipeline's recipient resolution normally prevents this.
	ErrUserMissing = errors.New("ride references unknown user")
)

const pqForeignKeyViolation = "23503"

// RideRepository handles database operations for rides. Rides are
// insert-only: created once, never updated, deleted explicitly by ID.
type RideRepository struct {
	db *sql.DB
}

func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{db: db}
}

// CreateRide inserts a new ride as a single atomic statement. When the
// ride carries a raw email, its hash is stored so re-delivered receipts
// collide on the (user_id, raw_email_hash) unique index; manual entries
// store NULL and never collide.
func (r *RideRepository) CreateRide(ctx context.Context, ride *models.Ride) error {
	if ride.ID == "" || ride.UserID == "" || !ride.Platform.Valid() {
		return fmt.Errorf("missing required fields for creating ride")
	}
	if _, err := uuid.Parse(ride.ID); err != nil {
		return fmt.Errorf("invalid ride ID format: %w", err)
	}
	if _, err := uuid.Parse(ride.UserID); err != nil {
		return fmt.Errorf("invalid ride user ID format: %w", err)
	}
	if ride.Value < 0 {
		return fmt.Errorf("ride value must be non-negative")
	}

	var rawHash sql.NullString
	if ride.RawEmail != "" {
		hash, err := webutil.GenerateHash(ride.RawEmail)
		if err != nil {
			return fmt.Errorf("failed to hash raw email: %w", err)
		}
		rawHash = sql.NullString{String: hash, Valid: true}
	}

	query := `
		INSERT INTO rides (
			id, user_id, platform, value, origin, destination,
			occurred_at, created_at, raw_email, raw_email_hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		ride.ID, ride.UserID, string(ride.Platform), ride.Value,
		ride.Origin, ride.Destination, ride.OccurredAt, ride.CreatedAt,
		ride.RawEmail, rawHash,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pqUniqueViolation:
				return ErrDuplicateRide
			case pqForeignKeyViolation:
				return ErrUserMissing
			}
		}
		return fmt.Errorf("failed to insert ride: %w", err)
	}
	return nil
}

// GetRideByID retrieves a ride by its ID.
func (r *RideRepository) GetRideByID(ctx context.Context, rideID string) (*models.Ride, error) {
	if _, err := uuid.Parse(rideID); err != nil {
		return nil, fmt.Errorf("invalid ride ID format: %w", err)
	}

	query := `
		SELECT id, user_id, platform, value, origin, destination,
		       occurred_at, created_at, raw_email
		FROM rides
		WHERE id = $1
	`
	var ride models.Ride
	var platformStr string
	row := r.db.QueryRowContext(ctx, query, rideID)
	err := row.Scan(
		&ride.ID, &ride.UserID, &platformStr, &ride.Value,
		&ride.Origin, &ride.Destination, &ride.OccurredAt,
		&ride.CreatedAt, &ride.RawEmail,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRideNotFound
		}
		return nil, fmt.Errorf("failed to get ride by ID: %w", err)
	}
	ride.Platform = models.Platform(platformStr)
	return &ride, nil
}

// GetRidesByUserID retrieves a user's rides, newest occurred_at first.
func (r *RideRepository) GetRidesByUserID(ctx context.Context, userID string) ([]models.Ride, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	query := `
		SELECT id, user_id, platform, value, origin, destination,
		       occurred_at, created_at, raw_email
		FROM rides
		WHERE user_id = $1
		ORDER BY occurred_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rides: %w", err)
	}
	defer rows.Close()

	var rides []models.Ride
	for rows.Next() {
		var ride models.Ride
		var platformStr string
		if err := rows.Scan(
			&ride.ID, &ride.UserID, &platformStr, &ride.Value,
			&ride.Origin, &ride.Destination, &ride.OccurredAt,
			&ride.CreatedAt, &ride.RawEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ride row: %w", err)
		}
		ride.Platform = models.Platform(platformStr)
		rides = append(rides, ride)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ride rows: %w", err)
	}

	return rides, nil
}

// DeleteRide removes a ride by ID.
func (r *RideRepository) DeleteRide(ctx context.Context, rideID string) error {
	if _, err := uuid.Parse(rideID); err != nil {
		return fmt.Errorf("invalid ride ID format: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM rides WHERE id = $1`, rideID)
	if err != nil {
		return fmt.Errorf("failed to delete ride: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrRideNotFound
	}
	return nil
}
