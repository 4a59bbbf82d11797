package routehandlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mvini0721/Ridetrack/models"
	"github.com/Mvini0721/Ridetrack/stats"
	"github.com/Mvini0721/Ridetrack/webutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsRouter(store RideStore) http.Handler {
	handler := NewStatsHandler(store)
	r := chi.NewRouter()
	r.Get("/users/{id}/stats", webutil.MakeHandler(handler.HandleGetUserStats))
	return r
}

func TestHandleGetUserStats(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeRideStore{rides: []models.Ride{
		{UserID: testUserID, Platform: models.PlatformUber, Value: 10, OccurredAt: now},
		{UserID: testUserID, Platform: models.PlatformNinetyNine, Value: 30, OccurredAt: now},
	}}
	router := statsRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/users/"+testUserID+"/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var summary stats.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.InDelta(t, 40, summary.Total, 1e-9)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 20, summary.Average, 1e-9)
}

func TestHandleGetUserStats_NoRides(t *testing.T) {
	router := statsRouter(&fakeRideStore{})

	req := httptest.NewRequest(http.MethodGet, "/users/"+testUserID+"/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var summary stats.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Zero(t, summary.Count)
	assert.Zero(t, summary.Average)
}
