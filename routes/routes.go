// Package routes wires the HTTP router.
package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/upb/api-authorizer/cognito"
	"github.com/upb/api-authorizer/middleware"
	"github.com/upb/api-authorizer/utils"
)

// SetupRoutes configures the application routes and middleware
func SetupRoutes(authMiddleware *middleware.AuthMiddleware) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		// Reports whether the caller is authenticated; serves anonymous
		// callers when authentication is configured optional.
		r.Get("/status", statusHandler)

		// The identity projection of the validated token
		r.With(authMiddleware.RequireIdentity).Get("/me", meHandler)
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})

	return r
}

// meHandler returns the authenticated caller's identity projection
func meHandler(w http.ResponseWriter, r *http.Request) {
	identity := cognito.IdentityFromContext(r.Context())
	if identity == nil {
		_ = utils.WriteAuthenticationError(w, "")
		return
	}
	_ = utils.WriteOK(w, identity)
}

// statusHandler reports the caller's authentication state
func statusHandler(w http.ResponseWriter, r *http.Request) {
	identity := cognito.IdentityFromContext(r.Context())
	_ = utils.WriteOK(w, map[string]any{
		"authenticated": identity != nil,
	})
}
