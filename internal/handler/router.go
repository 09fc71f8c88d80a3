package handler

import (
	"database/sql"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/latch-net/latch-be/internal/service"
)

// SetupRouter creates the main Chi router for the application.
// It takes the services and a logger as dependencies to inject into the handlers.
func SetupRouter(commandService CommandService, authService service.IAuthService, db *sql.DB, gatherer prometheus.Gatherer, logger *log.Logger) *chi.Mux {
	// Create a new Chi router instance.
	r := chi.NewRouter()

	// --- Standard Middleware ---
	// Logger: Logs request details (method, path, latency, status). Very useful for debugging.
	r.Use(middleware.Logger)
	// Recoverer: Recovers from panics and returns a 500 error instead of crashing.
	r.Use(middleware.Recoverer)

	// --- CORS Middleware ---
	// This is critical for allowing your frontend (on a different domain) to communicate
	// with your backend.
	r.Use(cors.Handler(cors.Options{
		// IMPORTANT: For production, you should lock this down to your specific frontend's domain.
		// e.g., AllowedOrigins:   []string{"https://your-frontend.vercel.app"},
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any major browser
	}))

	// --- Route Definitions ---

	authHandler := NewAuthHandler(authService, logger)
	authMiddleware := NewAuthMiddleware(authService, logger)
	commandHandler := NewCommandHandler(commandService, logger)
	healthHandler := NewHealthHandler(db, logger)

	r.Get("/health", healthHandler.Check)
	r.Method("GET", "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// We'll group our API endpoints under a versioned path.
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Command endpoints require an authenticated operator.
		r.Route("/commands", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/lock", commandHandler.Lock)
			r.Post("/unlock", commandHandler.Unlock)
			r.Post("/send", commandHandler.Send)
			r.Get("/history", commandHandler.History)
		})
	})

	return r
}
