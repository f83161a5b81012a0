package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/noah-isme/tutor-api/internal/config"
	"github.com/noah-isme/tutor-api/internal/database"
	"github.com/noah-isme/tutor-api/internal/events"
	"github.com/noah-isme/tutor-api/internal/repository"
	"github.com/noah-isme/tutor-api/internal/service"
)

// app bundles what every subcommand needs once the store is open.
type app struct {
	cfg       config.Config
	db        *gorm.DB
	lessons   repository.LessonRepository
	questions repository.QuestionRepository
	catalogue service.LessonService
	publisher events.Publisher
	logger    zerolog.Logger
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tutorctl",
		Short:         "Manage tutor lessons and questions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("db-driver", "", "Database driver, sqlite or postgres (overrides TUTOR_DATABASE_DRIVER)")
	root.PersistentFlags().String("db", "", "Database DSN or SQLite path (overrides TUTOR_DATABASE_URL)")

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newAddQuestionsCmd())
	root.AddCommand(newLessonsCmd())

	return root
}

// withApp loads configuration, opens and migrates the store, runs fn and closes the store.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if driver, _ := cmd.Flags().GetString("db-driver"); driver != "" {
		cfg.DatabaseDriver = driver
	}
	if dsn, _ := cmd.Flags().GetString("db"); dsn != "" {
		cfg.DatabaseURL = dsn
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.WarnLevel)

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("failed to close database")
		}
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// The API caches the lesson catalogue in Redis; commands that add lessons clear it.
	redisClient, err := database.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	lessons := repository.NewLessonRepository(db)
	questions := repository.NewQuestionRepository(db)

	a := &app{
		cfg:       cfg,
		db:        db,
		lessons:   lessons,
		questions: questions,
		catalogue: service.NewLessonService(lessons, questions, redisClient, cfg.LessonCacheTTL, logger),
		publisher: events.Nop{},
		logger:    logger,
	}

	return fn(ctx, a)
}
