package routes

import (
	"net/http"
	"time"

	"vahub/internal/api/handlers/auth"
	"vahub/internal/api/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RegisterAuthRoutes registers the VATSIM Connect login flow with dedicated
// rate limiting. Auth endpoints have stricter limits than the rest of the API
// to prevent:
// - Credential stuffing against the login redirect
// - OAuth state exhaustion
func RegisterAuthRoutes(r chi.Router, handler *auth.Handler, allowedOrigins []string) {
	// Login and callback: 10 req/min per IP
	loginLimiter := middleware.NewRateLimiter(10, 1*time.Minute)

	// Logout: 10 req/min per IP
	logoutLimiter := middleware.NewRateLimiter(10, 1*time.Minute)

	r.With(loginLimiter.Middleware).Get("/api/auth/login", handler.HandleLogin)

	// Callback needs CORS since VATSIM Connect redirects the browser back here
	r.With(corsMiddleware(allowedOrigins), loginLimiter.Middleware).Get("/api/auth/callback", handler.HandleCallback)

	r.Get("/api/auth/me", handler.HandleMe)
	r.With(logoutLimiter.Middleware).Post("/api/auth/logout", handler.HandleLogout)
}

// corsMiddleware creates a CORS middleware for the OAuth callback with specific allowed origins
func corsMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
		},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	})
}
