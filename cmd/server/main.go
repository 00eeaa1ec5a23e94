package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tripshare/tripshare/internal/config"
	"github.com/tripshare/tripshare/internal/database"
	"github.com/tripshare/tripshare/internal/handlers"
	"github.com/tripshare/tripshare/internal/logging"
	"github.com/tripshare/tripshare/internal/middleware"
	"github.com/tripshare/tripshare/internal/oauth"
	"github.com/tripshare/tripshare/internal/services"
	"github.com/tripshare/tripshare/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Debug {
		logger.SetLevel(logging.LevelDebug)
		logging.SetDefaultLevel(logging.LevelDebug)
		logger.Debug("Debug logging enabled", map[string]interface{}{"env": cfg.Server.Environment})
	}

	logger.Info("Starting tripshare server...")

	shutdownTracing, err := telemetry.Init(context.Background(), cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("Tracer shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	prometheus.MustRegister(database.NewPoolCollector(db.Pool))
	logger.Info("Connected to PostgreSQL")

	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN(), "migrations")
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.OpenRedis(context.Background(), cfg.Redis)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Services
	providers := oauth.FromConfig(cfg.OAuth)
	logger.Info("OAuth providers configured", map[string]interface{}{"providers": providers.Names()})

	userService := services.NewUserService(db.Pool)
	authService := services.NewAuthService(userService, services.NewRedisClient(redisDB.Client), providers, cfg.Auth)
	friendService := services.NewFriendService(db.Pool)
	tripService := services.NewTripService(db.Pool)
	participantService := services.NewParticipantService(db.Pool)
	dashboardService := services.NewDashboardService(db.Pool)
	destinationService := services.NewDestinationService(db.Pool)
	activityService := services.NewActivityService(db.Pool)
	expenseService := services.NewExpenseService(db.Pool)
	commentService := services.NewCommentService(db.Pool)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	authHandler := handlers.NewAuthHandler(authService, userService, cfg.OAuth.SuccessRedirect, cfg.Server.Secure)
	friendHandler := handlers.NewFriendHandler(friendService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	tripHandler := handlers.NewTripHandler(tripService, participantService)
	destinationHandler := handlers.NewDestinationHandler(destinationService)
	activityHandler := handlers.NewActivityHandler(activityService, commentService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Secure)
	compress := middleware.NewCompress()
	requestLogger := middleware.NewRequestLogger(logger)
	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	authRateLimiter := middleware.NewAuthRateLimiter(redisDB.Client, resolveAuthRateLimit(cfg, logger, os.LookupEnv))

	requireAuth := authMiddleware.RequireAuth
	limitAuth := authRateLimiter.Middleware

	mux := http.NewServeMux()

	// Health and metrics (no auth)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Auth
	mux.Handle("POST /api/auth/signup", limitAuth(http.HandlerFunc(authHandler.SignUp)))
	mux.Handle("POST /api/auth/token", limitAuth(http.HandlerFunc(authHandler.Token)))
	mux.HandleFunc("GET /api/auth/providers", authHandler.Providers)
	mux.Handle("GET /api/auth/oauth/{provider}", limitAuth(http.HandlerFunc(authHandler.OAuthStart)))
	mux.HandleFunc("GET /api/auth/oauth/{provider}/callback", authHandler.OAuthCallback)
	mux.Handle("POST /api/auth/logout", requireAuth(http.HandlerFunc(authHandler.Logout)))
	mux.HandleFunc("GET /api/auth/session", authHandler.Session)
	mux.Handle("PUT /api/users/me", requireAuth(http.HandlerFunc(authHandler.UpdateProfile)))
	mux.Handle("PUT /api/users/me/password", requireAuth(limitAuth(http.HandlerFunc(authHandler.ChangePassword))))

	// Friends
	mux.Handle("GET /api/friends", requireAuth(http.HandlerFunc(friendHandler.List)))
	mux.Handle("POST /api/friends/requests", requireAuth(http.HandlerFunc(friendHandler.SendRequest)))
	mux.Handle("PUT /api/friends/requests/{id}/accept", requireAuth(http.HandlerFunc(friendHandler.AcceptRequest)))
	mux.Handle("PUT /api/friends/requests/{id}/decline", requireAuth(http.HandlerFunc(friendHandler.DeclineRequest)))
	mux.Handle("DELETE /api/friends/requests/{id}/cancel", requireAuth(http.HandlerFunc(friendHandler.CancelRequest)))
	mux.Handle("DELETE /api/friends/{id}", requireAuth(http.HandlerFunc(friendHandler.Remove)))

	mux.Handle("GET /api/dashboard", requireAuth(http.HandlerFunc(dashboardHandler.Get)))

	// Trips and sharing
	mux.Handle("GET /api/trips", requireAuth(http.HandlerFunc(tripHandler.List)))
	mux.Handle("POST /api/trips", requireAuth(http.HandlerFunc(tripHandler.Create)))
	mux.Handle("GET /api/trips/shared", requireAuth(http.HandlerFunc(tripHandler.Shared)))
	mux.Handle("GET /api/trips/{id}", requireAuth(http.HandlerFunc(tripHandler.Get)))
	mux.Handle("PUT /api/trips/{id}", requireAuth(http.HandlerFunc(tripHandler.Update)))
	mux.Handle("DELETE /api/trips/{id}", requireAuth(http.HandlerFunc(tripHandler.Delete)))
	mux.Handle("GET /api/trips/{id}/participants", requireAuth(http.HandlerFunc(tripHandler.ListParticipants)))
	mux.Handle("POST /api/trips/{id}/participants", requireAuth(http.HandlerFunc(tripHandler.Share)))
	mux.Handle("DELETE /api/participants/{id}", requireAuth(http.HandlerFunc(tripHandler.RemoveParticipant)))

	// Destinations and activities
	mux.Handle("GET /api/trips/{id}/destinations", requireAuth(http.HandlerFunc(destinationHandler.List)))
	mux.Handle("POST /api/trips/{id}/destinations", requireAuth(http.HandlerFunc(destinationHandler.Create)))
	mux.Handle("PUT /api/destinations/{id}", requireAuth(http.HandlerFunc(destinationHandler.Update)))
	mux.Handle("DELETE /api/destinations/{id}", requireAuth(http.HandlerFunc(destinationHandler.Delete)))
	mux.Handle("GET /api/trips/{id}/activities", requireAuth(http.HandlerFunc(activityHandler.ListByTrip)))
	mux.Handle("POST /api/destinations/{id}/activities", requireAuth(http.HandlerFunc(activityHandler.Create)))
	mux.Handle("PUT /api/activities/{id}", requireAuth(http.HandlerFunc(activityHandler.Update)))
	mux.Handle("DELETE /api/activities/{id}", requireAuth(http.HandlerFunc(activityHandler.Delete)))

	// Expenses
	mux.Handle("GET /api/trips/{id}/expenses", requireAuth(http.HandlerFunc(expenseHandler.List)))
	mux.Handle("POST /api/trips/{id}/expenses", requireAuth(http.HandlerFunc(expenseHandler.Create)))
	mux.Handle("GET /api/expenses", requireAuth(http.HandlerFunc(expenseHandler.Mine)))
	mux.Handle("GET /api/expenses/{id}", requireAuth(http.HandlerFunc(expenseHandler.Get)))
	mux.Handle("PUT /api/expenses/{id}", requireAuth(http.HandlerFunc(expenseHandler.Update)))
	mux.Handle("DELETE /api/expenses/{id}", requireAuth(http.HandlerFunc(expenseHandler.Delete)))

	// Comments
	mux.Handle("GET /api/activities/{id}/comments", requireAuth(http.HandlerFunc(activityHandler.ListComments)))
	mux.Handle("POST /api/activities/{id}/comments", requireAuth(http.HandlerFunc(activityHandler.CreateComment)))
	mux.Handle("PUT /api/comments/{id}", requireAuth(http.HandlerFunc(activityHandler.UpdateComment)))
	mux.Handle("DELETE /api/comments/{id}", requireAuth(http.HandlerFunc(activityHandler.DeleteComment)))

	// Build middleware chain (order matters: outermost last).
	// Instrument wraps the mux directly so r.Pattern is visible to it.
	var handler http.Handler = metrics.Instrument(mux)
	handler = authMiddleware.Authenticate(handler)
	handler = httprate.LimitByIP(cfg.Server.RateLimit, time.Minute)(handler)
	handler = compress.Apply(handler)
	handler = cors.Handler(corsOptions(cfg.Server.AllowedOrigins))(handler)
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)
	handler = telemetry.Middleware(cfg.Telemetry.ServiceName, nil)(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}

func corsOptions(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}
}

func resolveAuthRateLimit(cfg *config.Config, logger *logging.Logger, lookupEnv func(string) (string, bool)) int64 {
	authRateLimit := int64(10)
	if cfg.Server.Environment == "development" {
		authRateLimit = 100
		logger.Info("Using development auth rate limit", map[string]interface{}{"limit": authRateLimit})
	}
	if v, ok := lookupEnv("AUTH_RATE_LIMIT"); ok && v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			authRateLimit = parsed
			logger.Info("Using auth rate limit from env", map[string]interface{}{"limit": authRateLimit})
		} else {
			logger.Warn("Invalid AUTH_RATE_LIMIT; using default", map[string]interface{}{
				"value": v,
				"limit": authRateLimit,
			})
		}
	}
	return authRateLimit
}
