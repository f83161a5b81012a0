package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tutor-api/internal/config"
	"github.com/noah-isme/tutor-api/internal/database"
	"github.com/noah-isme/tutor-api/internal/events"
	"github.com/noah-isme/tutor-api/internal/handler"
	"github.com/noah-isme/tutor-api/internal/middleware"
	"github.com/noah-isme/tutor-api/internal/repository"
	"github.com/noah-isme/tutor-api/internal/router"
	"github.com/noah-isme/tutor-api/internal/service"
	"github.com/noah-isme/tutor-api/internal/worker"
	"github.com/noah-isme/tutor-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()
	if cfg.AppEnv == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn().Err(err).Msg("failed to close database")
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	natsConn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	model, err := ai.New(ctx, ai.Config{
		Provider:    cfg.AIProvider,
		Model:       cfg.AIModel,
		APIKey:      cfg.AIAPIKey(),
		BaseURL:     cfg.AIBaseURL,
		Temperature: cfg.AITemperature,
		MaxTokens:   cfg.AIMaxTokens,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("failed to create model client: %v", err)
	}

	pool := worker.NewPool(model, cfg.WorkerPoolSize, cfg.AITimeout, logger)

	var publisher events.Publisher = events.Nop{}
	if broker := events.NewBrokerPublisher(redisClient, natsConn, cfg.EventsChannel, logger); broker.Enabled() {
		publisher = broker
	}

	validate := validator.New()

	lessonRepo := repository.NewLessonRepository(db)
	questionRepo := repository.NewQuestionRepository(db)

	lessonService := service.NewLessonService(lessonRepo, questionRepo, redisClient, cfg.LessonCacheTTL, logger)
	generationService := service.NewQuestionGenerationService(lessonRepo, questionRepo, pool, publisher, logger)
	feedbackService := service.NewFeedbackService(lessonRepo, questionRepo, pool, publisher, logger)
	submissionService := service.NewSubmissionService(logger)
	seedService := service.NewSeedService(lessonRepo, lessonService, cfg.SeedEnabled, cfg.SeedToken, logger)

	lessonHandler := handler.NewLessonHandler(lessonService, validate, logger)
	tutorHandler := handler.NewTutorHandler(generationService, feedbackService, submissionService, validate, logger)
	seedHandler := handler.NewSeedHandler(seedService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSAllowedOrigins})
	router.Register(app, cfg, router.Dependencies{
		LessonHandler: lessonHandler,
		TutorHandler:  tutorHandler,
		SeedHandler:   seedHandler,
	})

	go func() {
		logger.Info().
			Str("address", cfg.HTTPAddress()).
			Str("ai_provider", cfg.AIProvider).
			Int("worker_slots", pool.Size()).
			Msg("starting server")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
