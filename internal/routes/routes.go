package routes

import (
	"net/http"
	"strings"

	"TRIPPLANNER_BACK-END/internal/config"
	"TRIPPLANNER_BACK-END/internal/handlers"
	"TRIPPLANNER_BACK-END/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	authHandler *handlers.AuthHandler,
	tripsHandler *handlers.TripsHandler,
	proxyHandler *handlers.ProxyHandler,
	healthHandler *handlers.HealthHandler,
	jwtCfg *config.JWTConfig,
) {
	// Health check routes
	http.HandleFunc("/healthz", healthHandler.HealthCheck)
	http.HandleFunc("/livez", healthHandler.LivenessCheck)
	http.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Account routes
	http.HandleFunc("/register", authHandler.Register)
	http.HandleFunc("/login", authHandler.Login)
	http.HandleFunc("/profile", middleware.AuthMiddleware(authHandler.GetProfile, jwtCfg))

	// Trip routes
	http.HandleFunc("/trips", tripsHandler.Trips)
	http.HandleFunc("/trips/", tripActionRouter(tripsHandler, proxyHandler))

	// Microservice proxy routes
	http.HandleFunc("/api/phrases/translate", proxyHandler.TranslatePhrases)
	http.HandleFunc("/api/trips/", exportRouter(proxyHandler))

	// Root route
	http.HandleFunc("/", rootHandler)
}

// tripActionRouter fans /trips/{id} and /trips/{id}/{action} out by the
// trailing path segment. Method checks stay inside each handler.
func tripActionRouter(trips *handlers.TripsHandler, proxy *handlers.ProxyHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/trips/")
		_, action, _ := strings.Cut(rest, "/")

		switch action {
		case "":
			trips.TripByID(w, r)
		case "cost-summary":
			trips.CostSummary(w, r)
		case "safety-tips":
			proxy.SafetyTips(w, r)
		case "itinerary-suggestions":
			proxy.ItinerarySuggestions(w, r)
		default:
			http.NotFound(w, r)
		}
	}
}

// exportRouter handles /api/trips/{id}/export.
func exportRouter(proxy *handlers.ProxyHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/trips/")
		_, action, _ := strings.Cut(rest, "/")

		if action == "export" {
			proxy.ExportTrip(w, r)
			return
		}
		http.NotFound(w, r)
	}
}

// rootHandler responds to requests on the root path
func rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Trip planner API is running"))
}
