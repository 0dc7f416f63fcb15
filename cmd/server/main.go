package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/jadralna-sola/sailing-school-web/internal/auth"
	"github.com/jadralna-sola/sailing-school-web/internal/catalog"
	"github.com/jadralna-sola/sailing-school-web/internal/config"
	"github.com/jadralna-sola/sailing-school-web/internal/content"
	"github.com/jadralna-sola/sailing-school-web/internal/database"
	"github.com/jadralna-sola/sailing-school-web/internal/handlers"
	"github.com/jadralna-sola/sailing-school-web/internal/notifier"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Stores
	contentStore := content.NewStore(db, logger)
	catalogStore := catalog.NewStore(contentStore)

	// Notifiers are optional; the site runs fine without them.
	var notifiers []notifier.Notifier
	discordNotifier, err := notifier.NewDiscordNotifier(cfg, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("discord notifier not initialized")
	} else {
		notifiers = append(notifiers, discordNotifier)
	}
	emailNotifier, err := notifier.NewEmailNotifier(cfg, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("email notifier not initialized")
	} else {
		notifiers = append(notifiers, emailNotifier)
	}

	// Initialize Handlers
	authn := auth.NewAuthenticator(cfg, logger)
	signupHandler := handlers.NewSignupHandler(db, logger, notifiers...)
	adminHandler := handlers.NewAdminHandler(db, catalogStore, cfg.WebDir, logger)
	catalogAPI := handlers.NewCatalogAPIHandler(catalogStore, logger)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, authn, signupHandler, adminHandler, catalogAPI, cfg.WebDir)

	// Start Server
	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
