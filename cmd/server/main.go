package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/hazmanhs/dormitory-reservation/internal/config"     // Internal config loader
	"github.com/hazmanhs/dormitory-reservation/internal/database"   // MySQL connection pool
	"github.com/hazmanhs/dormitory-reservation/internal/handler"    // HTTP handlers
	"github.com/hazmanhs/dormitory-reservation/internal/middleware" // Rate limiting and response cache
	"github.com/hazmanhs/dormitory-reservation/internal/queue"      // RabbitMQ assignment consumer
	"github.com/hazmanhs/dormitory-reservation/internal/repository" // Data access layer
	"github.com/hazmanhs/dormitory-reservation/internal/router"     // Route registration
)

func main() {
	// Load .env when present; fall back to real environment variables in prod.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load() // Load environment config

	// Open the MySQL pool. Everything downstream shares this handle.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories over the shared pool.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	trainers := repository.NewTrainerRepo(db)
	assignments := repository.NewAssignmentRepo(db)
	schedules := repository.NewScheduleRepo(db)

	// Handlers wiring repositories together.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	trainerH := handler.NewTrainerHandler(trainers)
	assignmentH := handler.NewAssignmentHandler(assignments, trainers)
	dormitoryH := handler.NewDormitoryHandler(assignments)
	scheduleH := handler.NewScheduleHandler(schedules, trainers)

	e := echo.New() // Create Echo instance

	// Redis backs both the token-bucket rate limiter and the response cache.
	// A nil client simply disables both; the middlewares pass requests through.
	rdb := config.NewRedisClient()
	if rdb != nil {
		rlCfg := config.LoadRateLimitConfig()
		if rlCfg.Enabled {
			e.Use(middleware.NewTokenBucket(rlCfg, rdb))
		}
	}

	router.RegisterRoutes(e)                     // Health check
	router.RegisterAuth(e, authH, cfg.JWTSecret) // Auth + /me

	// Public dormitory browse endpoints, cached in Redis when available.
	if rdb != nil {
		cacheCfg := config.LoadCacheConfig()
		if cacheCfg.Enabled {
			router.RegisterDormitory(e, dormitoryH, middleware.NewRedisCache(cacheCfg, rdb))
		} else {
			router.RegisterDormitory(e, dormitoryH)
		}
	} else {
		router.RegisterDormitory(e, dormitoryH)
	}

	// Staff management endpoints behind JWT + role middleware.
	router.RegisterStaff(e, trainerH, assignmentH, scheduleH, cfg.JWTSecret)

	// Consume assignment.confirmed events in the background. The consumer
	// reconnects on failure, so a dead broker never blocks startup.
	go func() {
		if err := queue.StartAssignmentConsumer(); err != nil {
			log.Printf("assignment consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
