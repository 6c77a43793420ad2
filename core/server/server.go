package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plansync/core/cache"
	"plansync/core/config"
	"plansync/core/constants"
	"plansync/core/database"
	"plansync/core/logger"
	"plansync/core/storage"
	"plansync/modules/auth"
	"plansync/modules/calendar"
	"plansync/modules/collab"
	collabworker "plansync/modules/collab/worker"
	"plansync/modules/notification"
	"plansync/modules/schedule"
	"plansync/modules/suggestion"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	echoswagger "github.com/swaggo/echo-swagger"
)

type requestValidator struct {
	validator *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	return v.validator.Struct(i)
}

// Run boots the API server and the background worker, and blocks until a
// shutdown signal arrives or startup fails.
func Run() error {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Init()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	redisCache, err := cache.NewCache(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	objectStore, err := storage.NewS3Store(cfg.S3)
	if err != nil {
		// Exports are optional; the rest of the API works without them.
		logger.Warn("Server:Run:S3:Unavailable", "error", err)
		objectStore = nil
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validator: validator.New()}
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())

	e.GET("/swagger/*", echoswagger.WrapHandler)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	authService, mw := auth.Init(e, db, redisCache)
	calendarService := calendar.Init(e, db, redisCache, mw)
	scheduleService := schedule.Init(e, calendarService, mw)
	notificationService := notification.Init(e, db, mw)
	collabService := collab.Init(e, db, notificationService, objectStore, mw)
	suggestion.Init(e, db, scheduleService, authService, cfg, mw)

	redisOpt := asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	worker := collabworker.NewWorker(collabService)

	asynqServer := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{constants.QueueDefault: 1},
	})
	mux := asynq.NewServeMux()
	worker.Register(mux)

	scheduler := asynq.NewScheduler(redisOpt, nil)
	if err := worker.RegisterPeriodic(scheduler); err != nil {
		return fmt.Errorf("register periodic tasks: %w", err)
	}

	errCh := make(chan error, 1)

	go func() {
		if err := asynqServer.Run(mux); err != nil {
			errCh <- fmt.Errorf("worker: %w", err)
		}
	}()
	go func() {
		if err := scheduler.Run(); err != nil {
			errCh <- fmt.Errorf("scheduler: %w", err)
		}
	}()
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
	case runErr = <-errCh:
		logger.Error("Server:Run:Fatal:Error:", runErr)
	}

	logger.Info("Shutting down server...")

	scheduler.Shutdown()
	asynqServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server:Run:Shutdown:Error:", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("Server:Run:CloseDB:Error:", err)
	}

	logger.Info("Server stopped")
	return runErr
}
