package main // Entry point package

import (
	"context" // Context for startup DB calls
	"log"     // Logging library
	"time"    // Timeouts for startup tasks

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/clinic-management/internal/config"     // Internal config loader
	"github.com/iliyamo/clinic-management/internal/database"   // Database connection and schema
	"github.com/iliyamo/clinic-management/internal/handler"    // HTTP handlers
	"github.com/iliyamo/clinic-management/internal/middleware" // Rate limiting middleware
	"github.com/iliyamo/clinic-management/internal/queue"      // Background event consumer
	"github.com/iliyamo/clinic-management/internal/repository" // Data access layer
	"github.com/iliyamo/clinic-management/internal/router"     // Route registration
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	// Open MySQL, create the schema and seed the default admin account.
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}
	if err := database.SeedAdmin(ctx, db, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		cancel()
		log.Fatalf("seed admin: %v", err)
	}
	cancel()

	// Redis backs the login rate limiter; nil client disables it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; login rate limiting disabled")
	}
	loginLimiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Repositories and handlers.
	userRepo := repository.NewUserRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo)
	userHandler := handler.NewUserHandler(cfg, userRepo)
	patientHandler := handler.NewPatientHandler(patientRepo)
	appointmentHandler := handler.NewAppointmentHandler(appointmentRepo, patientRepo)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, loginLimiter)
	router.RegisterAPI(e, cfg.JWTSecret, userHandler, patientHandler, appointmentHandler)

	// Background consumer appends appointment.created events to
	// logs/appointments.log; it reconnects on its own and never stops the
	// server.
	go func() {
		if err := queue.StartAppointmentConsumer(); err != nil {
			log.Printf("appointment consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
