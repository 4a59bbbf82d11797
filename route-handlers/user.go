package routehandlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Mvini0721/Ridetrack/datastore"
	"github.com/Mvini0721/Ridetrack/models"
	"github.com/Mvini0721/Ridetrack/webutil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UserStore is the slice of the user repository the handler needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
}

type UserHandler struct {
	Repo UserStore
	// IngestDomain is the domain generated ingestion addresses live on.
	IngestDomain string
}

func NewUserHandler(repo UserStore, ingestDomain string) *UserHandler {
	return &UserHandler{Repo: repo, IngestDomain: ingestDomain}
}

func (h *UserHandler) HandleGetUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.Repo.GetUsers(r.Context())
	if err != nil {
		return fmt.Errorf("failed to retrieve users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, users)
	return nil
}

func (h *UserHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) error {
	var requestData struct {
		Email string `json:"email"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestData); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	email := strings.ToLower(strings.TrimSpace(requestData.Email))
	if email == "" {
		return webutil.ErrBadRequest("Email is required")
	}
	if !strings.Contains(email, "@") {
		return webutil.ErrBadRequest("Email is not a valid address")
	}

	token, err := webutil.GenerateRandomToken(8)
	if err != nil {
		return fmt.Errorf("failed to generate ingest token: %w", err)
	}

	newUser := models.User{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Email:       email,
		IngestEmail: fmt.Sprintf("rides+%s@%s", token, h.IngestDomain),
	}

	if err := h.Repo.CreateUser(r.Context(), &newUser); err != nil {
		if errors.Is(err, datastore.ErrDuplicateEmail) {
			return webutil.ErrConflict("Email already registered")
		}
		return fmt.Errorf("failed to create user %s: %w", newUser.Email, err)
	}

	webutil.RespondWithJSON(w, http.StatusCreated, newUser)
	return nil
}

func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) error {
	userID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(userID); err != nil {
		return webutil.ErrBadRequest("Invalid user ID format")
	}

	user, err := h.Repo.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return webutil.ErrNotFound("User not found")
		}
		return fmt.Errorf("failed to retrieve user %s: %w", userID, err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, user)
	return nil
}
