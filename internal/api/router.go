package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/karanvs/se-portal/internal/api/handlers"
	"github.com/karanvs/se-portal/internal/auth"
	"github.com/karanvs/se-portal/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(sessions *auth.Manager, users services.UserServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Resolve the current user once per request
	r.Use(sessions.Middleware())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(users, sessions)
	pageHandler := handlers.NewPageHandler()

	// Public routes
	r.Get("/", pageHandler.Home)
	r.Get("/robots.txt", pageHandler.Crawler)
	r.Get("/sitemap.xml", pageHandler.Crawler)
	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)
	r.Get("/signup", authHandler.SignupForm)
	r.Post("/signup", authHandler.Signup)
	r.Get("/game", authHandler.Game)

	// Session-gated routes; anonymous visitors are sent to the homepage
	r.Group(func(r chi.Router) {
		r.Use(sessions.RequireUser)
		r.Get("/logout", authHandler.Logout)
		r.Get("/dashboard", authHandler.Dashboard)
		r.Get("/analytics", authHandler.Analytics)
	})

	return r
}
