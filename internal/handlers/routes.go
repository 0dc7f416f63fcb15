package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jadralna-sola/sailing-school-web/internal/auth"
)

func RegisterRoutes(r *chi.Mux, authn *auth.Authenticator, signupHandler *SignupHandler,
	adminHandler *AdminHandler, catalogAPI *CatalogAPIHandler, webDir string) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Jadralna šola API", "1.0.0")
	api := humachi.New(r, config)

	// Public routes
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	huma.Get(api, "/api/content/available-courses", catalogAPI.HandleAvailableCourses)

	r.Post("/signup", signupHandler.HandleSignup)

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(authn.RequireAdmin)
		r.Get("/admin", adminHandler.HandleSignupList)
		r.Get("/admin/dashboard", adminHandler.HandleDashboard)
		r.Post("/admin/save-courses", adminHandler.HandleSaveCourses)
		r.Post("/admin/add-course-date", adminHandler.HandleAddDate)
		r.Post("/admin/update-course-date", adminHandler.HandleUpdateDate)
		r.Post("/admin/delete-course-date", adminHandler.HandleDeleteDate)
	})

	// Everything else is the static front end with the SPA fallback.
	r.NotFound(NewSPAHandler(webDir).ServeHTTP)
}
