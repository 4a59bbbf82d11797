package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	rh "github.com/Mvini0721/Ridetrack/route-handlers"
	"github.com/Mvini0721/Ridetrack/webutil"
)

const (
	apiBasePath   = "/api"
	usersBasePath = "/users"
	ridesBasePath = "/rides"
)

const (
	ridesSubPath = "/rides"
	statsSubPath = "/stats"
)

const (
	paramID = "id" // General parameter name for resource IDs
)

func SetupRoutes(
	userHandler *rh.UserHandler,
	rideHandler *rh.RideHandler,
	statsHandler *rh.StatsHandler,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	// No blanket Content-Type middleware here: the webutil respond
	// helpers set it themselves, and HasResponseWriterSentHeader relies
	// on its absence to detect an unwritten response.

	r.Route(apiBasePath, func(r chi.Router) {
		configureUserRoutes(r, userHandler, rideHandler, statsHandler)
		configureRideRoutes(r, rideHandler)
	})

	// Health check endpoint
	r.Get("/healthz", handleHealthCheck)

	return r
}

// Helper for constructing paths with a parameter
func pathWithParam(basePath string, paramName string) string {
	if basePath == "" {
		return "/{" + paramName + "}"
	}
	return basePath + "/{" + paramName + "}"
}

// --- User Routes ---
func configureUserRoutes(r chi.Router, userHandler *rh.UserHandler, rideHandler *rh.RideHandler, statsHandler *rh.StatsHandler) {
	userSpecificPath := pathWithParam("", paramID) // e.g., "/{id}"

	r.Route(usersBasePath, func(r chi.Router) {
		r.Get("/", webutil.MakeHandler(userHandler.HandleGetUsers))
		r.Post("/", webutil.MakeHandler(userHandler.HandleCreateUser))
		r.Route(userSpecificPath, func(r chi.Router) {
			r.Get("/", webutil.MakeHandler(userHandler.HandleGetUser))
			// Nested: rides and stats for a specific user
			r.Get(ridesSubPath, webutil.MakeHandler(rideHandler.HandleGetUserRides))  // GET /users/{id}/rides
			r.Post(ridesSubPath, webutil.MakeHandler(rideHandler.HandleCreateRide))   // POST /users/{id}/rides
			r.Get(statsSubPath, webutil.MakeHandler(statsHandler.HandleGetUserStats)) // GET /users/{id}/stats
		})
	})
}

// --- Ride Routes ---
func configureRideRoutes(r chi.Router, handler *rh.RideHandler) {
	specificRidePath := pathWithParam(ridesBasePath, paramID) // e.g., "/rides/{id}"

	r.Get(specificRidePath, webutil.MakeHandler(handler.HandleGetRide))
	r.Delete(specificRidePath, webutil.MakeHandler(handler.HandleDeleteRide))
}

// --- Utility Functions ---

// handleHealthCheck responds to a health check request.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}