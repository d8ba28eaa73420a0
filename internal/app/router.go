package app

import (
	"net/http"

	authAPI "tosipeli/internal/api/auth"
	spinAPI "tosipeli/internal/api/spin"
	"tosipeli/internal/middleware"
	"tosipeli/pkg/resp"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func NewRouter(
	logger zerolog.Logger,
	registry *prometheus.Registry,
	authHandler *authAPI.Handler,
	spinHandler *spinAPI.Handler,
) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.MethodNotAllowed(methodNotAllowed)
	r.NotFound(notFound)

	r.Get("/health", health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(rr chi.Router) {
		rr.Use(middleware.PlaySession)

		post := func(pattern string, h http.HandlerFunc) {
			rr.Post(pattern, h)
			rr.Options(pattern, preflight)
		}

		// Auth endpoints
		post("/register", authHandler.Register)
		post("/login", authHandler.Login)
		post("/logout", authHandler.Logout)
		post("/update-preferences", authHandler.UpdatePreferences)

		// Game endpoints
		post("/spin", spinHandler.Spin)
		post("/spin/status", spinHandler.Status)
		rr.Get("/catalog", spinHandler.Catalog)
	})

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// preflight answers bare OPTIONS requests the CORS middleware lets through
func preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	resp.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	resp.WriteError(w, http.StatusNotFound, "Not found")
}
