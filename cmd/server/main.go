package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"vahub/internal/api/handlers/auth"
	"vahub/internal/api/middleware"
	"vahub/internal/api/routes"
	"vahub/internal/config"
	"vahub/internal/core/airlines"
	"vahub/internal/core/events"
	"vahub/internal/core/pilots"
	"vahub/internal/core/session"
	"vahub/internal/core/stats"
	"vahub/internal/core/vatsim"
	postgresRepo "vahub/internal/db/postgres"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	log.Info().Msg("connected to database")

	// Run migrations
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("failed to set goose dialect")
	}
	if err := goose.Up(db, "internal/db/migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("migrations completed")

	// Session cookies. An undersized secret already failed config.Load,
	// so this only errs on an empty one.
	sessions, err := session.NewStore(cfg.SessionSecret, cfg.Production)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid session secret")
	}

	vatsimClient := vatsim.NewClient(vatsim.Config{
		BaseURL:      cfg.VatsimAuthURL,
		ClientID:     cfg.VatsimClientID,
		ClientSecret: cfg.VatsimClientSecret,
		RedirectURI:  cfg.VatsimRedirectURI,
	})

	// Repositories and services
	pilotRepo := postgresRepo.NewPilotRepository(db)
	airlineRepo := postgresRepo.NewAirlineRepository(db)
	eventRepo := postgresRepo.NewEventRepository(db)
	statsRepo := postgresRepo.NewStatsRepository(db)

	pilotService := pilots.NewService(pilotRepo, vatsimClient)
	airlineService := airlines.NewService(airlineRepo)
	eventService := events.NewService(eventRepo)
	statsService := stats.NewService(statsRepo)

	authHandler := auth.NewHandler(sessions, vatsimClient, pilotService)
	sessionAuth := middleware.NewSessionAuth(sessions)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	// Rate limiting: 100 requests per minute per IP
	rateLimiter := middleware.NewRateLimiter(100, 1*time.Minute)
	r.Use(rateLimiter.Middleware)

	routes.RegisterAuthRoutes(r, authHandler, cfg.AllowedOrigins)
	routes.RegisterPilotRoutes(r, pilotService, airlineService, sessionAuth)
	routes.RegisterAirlineRoutes(r, airlineService)
	routes.RegisterEventRoutes(r, eventService)
	routes.RegisterStatsRoutes(r, statsService)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
