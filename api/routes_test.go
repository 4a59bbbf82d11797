package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Mvini0721/Ridetrack/datastore"
	"github.com/Mvini0721/Ridetrack/models"
	rh "github.com/Mvini0721/Ridetrack/route-handlers"
	"github.com/Mvini0721/Ridetrack/webutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserStore struct {
	createErr error
}

func (s *stubUserStore) CreateUser(_ context.Context, _ *models.User) error {
	return s.createErr
}

func (s *stubUserStore) GetUserByID(_ context.Context, _ string) (*models.User, error) {
	return nil, sql.ErrNoRows
}

func (s *stubUserStore) GetUsers(_ context.Context) ([]models.User, error) {
	return nil, nil
}

type stubRideStore struct{}

func (stubRideStore) CreateRide(_ context.Context, _ *models.Ride) error { return nil }

func (stubRideStore) GetRideByID(_ context.Context, _ string) (*models.Ride, error) {
	return nil, datastore.ErrRideNotFound
}

func (stubRideStore) GetRidesByUserID(_ context.Context, _ string) ([]models.Ride, error) {
	return nil, nil
}

func (stubRideStore) DeleteRide(_ context.Context, _ string) error {
	return datastore.ErrRideNotFound
}

func testRouter(users *stubUserStore) http.Handler {
	rides := stubRideStore{}
	return SetupRoutes(
		rh.NewUserHandler(users, "rides.ridetrack.dev"),
		rh.NewRideHandler(rides),
		rh.NewStatsHandler(rides),
	)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "error responses must be JSON, got %q", rec.Body.String())
	return body["error"]
}

// Errors returned from handlers must surface through the full middleware
// stack as their status code and JSON body, never as an empty 200.
func TestSetupRoutes_ErrorResponses(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		store     *stubUserStore
		wantCode  int
		wantError string
	}{
		{
			name:      "bad payload",
			method:    http.MethodPost,
			path:      "/api/users",
			body:      `{"email":""}`,
			store:     &stubUserStore{},
			wantCode:  http.StatusBadRequest,
			wantError: "Email is required",
		},
		{
			name:      "duplicate email",
			method:    http.MethodPost,
			path:      "/api/users",
			body:      `{"email":"ana@example.com"}`,
			store:     &stubUserStore{createErr: datastore.ErrDuplicateEmail},
			wantCode:  http.StatusConflict,
			wantError: "Email already registered",
		},
		{
			name:      "unknown user",
			method:    http.MethodGet,
			path:      "/api/users/f2c7a3a1-9be4-4d8a-8f4f-2f0f6f9b1c11",
			store:     &stubUserStore{},
			wantCode:  http.StatusNotFound,
			wantError: "User not found",
		},
		{
			name:      "non-positive manual ride value",
			method:    http.MethodPost,
			path:      "/api/users/f2c7a3a1-9be4-4d8a-8f4f-2f0f6f9b1c11/rides",
			body:      `{"platform":"uber","value":0}`,
			store:     &stubUserStore{},
			wantCode:  http.StatusBadRequest,
			wantError: "Value must be positive",
		},
		{
			name:      "unknown ride",
			method:    http.MethodDelete,
			path:      "/api/rides/0b0f2a6e-4f7e-4f05-a6bb-0f9a3a9f7d42",
			store:     &stubUserStore{},
			wantCode:  http.StatusNotFound,
			wantError: "Ride not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := testRouter(tt.store)

			var payload *strings.Reader
			if tt.body != "" {
				payload = strings.NewReader(tt.body)
			} else {
				payload = strings.NewReader("")
			}
			req := httptest.NewRequest(tt.method, tt.path, payload)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantError, decodeError(t, rec))
			assert.Equal(t, webutil.ContentTypeJSONUTF8, rec.Header().Get(webutil.HeaderContentType))
		})
	}
}

func TestSetupRoutes_SuccessStillJSON(t *testing.T) {
	router := testRouter(&stubUserStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"email":"ana@example.com"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, webutil.ContentTypeJSONUTF8, rec.Header().Get(webutil.HeaderContentType))

	var created models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "ana@example.com", created.Email)
	assert.True(t, strings.HasSuffix(created.IngestEmail, "@rides.ridetrack.dev"))
}

func TestSetupRoutes_Healthz(t *testing.T) {
	router := testRouter(&stubUserStore{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
