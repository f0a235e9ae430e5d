package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agentconnect/profiles-server-go/internal/config"
	"github.com/agentconnect/profiles-server-go/internal/handler"
	"github.com/agentconnect/profiles-server-go/internal/identity"
	"github.com/agentconnect/profiles-server-go/internal/jobs"
	"github.com/agentconnect/profiles-server-go/internal/metrics"
	"github.com/agentconnect/profiles-server-go/internal/middleware"
	"github.com/agentconnect/profiles-server-go/internal/repository"
	"github.com/agentconnect/profiles-server-go/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// .env is optional; deployments configure the process environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	requestRepo := repository.NewRequestRepository()
	sessionRepo := repository.NewSessionRepository()

	provider := identity.NewSimulatedProvider()

	authService := service.NewAuthService(provider, userRepo, sessionRepo)
	profileService := service.NewProfileService(profileRepo)
	appointmentService := service.NewAppointmentService(profileRepo, requestRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitPerMin)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	discoveryHandler := handler.NewDiscoveryHandler(profileService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)
	r.Use(securityHeadersMiddleware.Handler)
	r.Use(collector.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(authMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	r.Route("/auth", func(r chi.Router) {
		r.Use(rateLimitMiddleware.Handler)
		r.Mount("/", authHandler.Routes())
	})

	r.Mount("/profiles", profileHandler.Routes())

	r.Route("/me", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/profile", profileHandler.MyProfile)
		r.Get("/requests", appointmentHandler.Incoming)
		r.Get("/requests/sent", appointmentHandler.Sent)
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Use(rateLimitMiddleware.Handler)
		r.Mount("/", appointmentHandler.Routes())
	})

	r.Get("/search/profiles", profileHandler.Search)
	r.Get("/agent/profiles", discoveryHandler.Profiles)

	cleanupJob := jobs.NewCleanupJob(sessionRepo, config.SessionSweepInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
