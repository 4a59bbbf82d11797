package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Mvini0721/Ridetrack/models"
	"github.com/lib/pq"
)

// ErrDuplicateEmail is returned when a public email or ingestion address
// collides with an existing user.
var ErrDuplicateEmail = errors.New("email already registered")

const pqUniqueViolation = "23505"

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, created_at, email, ingest_email)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.CreatedAt, user.Email, user.IngestEmail)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT id, created_at, email, ingest_email
		FROM users
		WHERE id = $1
	`
	var user models.User
	row := r.db.QueryRowContext(ctx, query, userID)
	err := row.Scan(&user.ID, &user.CreatedAt, &user.Email, &user.IngestEmail)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, created_at, email, ingest_email
		FROM users
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.CreatedAt, &user.Email, &user.IngestEmail); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// ResolveIdentity maps an inbound identity (the public email or the
// generated ingestion address) to a user ID. An unknown identity is not
// an error here: it returns "" so the caller can report it distinctly.
func (r *UserRepository) ResolveIdentity(ctx context.Context, identity string) (string, error) {
	query := `
		SELECT id
		FROM users
		WHERE email = $1 OR ingest_email = $1
		LIMIT 1
	`
	var userID string
	err := r.db.QueryRowContext(ctx, query, identity).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to resolve identity: %w", err)
	}
	return userID, nil
}
