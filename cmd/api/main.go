package main

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shophub-market/shophub-backend/internal/auth"
	"github.com/shophub-market/shophub-backend/internal/config"
	"github.com/shophub-market/shophub-backend/internal/db"
	"github.com/shophub-market/shophub-backend/internal/httpapi"
	"github.com/shophub-market/shophub-backend/internal/modules/admin"
	"github.com/shophub-market/shophub-backend/internal/modules/catalog"
	"github.com/shophub-market/shophub-backend/internal/modules/customer"
	"github.com/shophub-market/shophub-backend/internal/modules/order"
	"github.com/shophub-market/shophub-backend/internal/modules/review"
	"github.com/shophub-market/shophub-backend/internal/modules/vendor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to the database")
	}
	defer conn.Close()
	log.Info().Msg("connected to the database")

	if err := db.Migrate(conn, cfg.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		httpapi.Respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// ── Accounts ────────────────────────────────────────────
	customerRepo := customer.NewPostgresRepository(conn)
	customerService := customer.NewService(customerRepo, tokens)
	customer.NewHandler(customerService).RegisterRoutes(router)

	vendorRepo := vendor.NewPostgresRepository(conn)
	vendorService := vendor.NewService(vendorRepo, tokens)
	vendor.NewHandler(vendorService).RegisterRoutes(router)

	adminRepo := admin.NewPostgresRepository(conn)
	adminService := admin.NewService(adminRepo, tokens)
	admin.NewHandler(adminService).RegisterRoutes(router)

	// ── Catalog ─────────────────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(conn)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Orders ──────────────────────────────────────────────
	orderRepo := order.NewPostgresRepository(conn)
	orderService := order.NewService(orderRepo)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Reviews ─────────────────────────────────────────────
	reviewRepo := review.NewPostgresRepository(conn)
	reviewService := review.NewService(reviewRepo)
	review.NewHandler(reviewService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	log.Info().Str("port", cfg.Port).Msg("api server starting")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
