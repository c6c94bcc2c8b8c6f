package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-ticker-relay/internal/reporter/config"
	"golang-ticker-relay/internal/reporter/repository"
	"golang-ticker-relay/internal/reporter/service"
	"golang-ticker-relay/pkg/discord"
	"golang-ticker-relay/pkg/logger"
	"golang-ticker-relay/pkg/postgres"
	"golang-ticker-relay/pkg/redis"
	"golang-ticker-relay/pkg/telegram"

	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the report service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Report Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	taskRepo := repository.NewTaskConfigRepository(redisClient.Client, appLogger)
	reportRepo := repository.NewReportRepository(db.DB)

	// Initialize notifiers
	telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken)
	if err != nil {
		appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
	}
	discordNotifier := discord.NewClient()

	// Initialize aggregator
	tickInterval, err := time.ParseDuration(cfg.Reporter.TickInterval)
	if err != nil {
		appLogger.Fatal("Invalid tick interval", logger.ErrorField(err))
	}
	aggregator, err := service.NewReportAggregator(
		taskRepo,
		reportRepo,
		telegramNotifier,
		discordNotifier,
		appLogger,
		tickInterval,
		cfg.Reporter.RetentionCron,
	)
	if err != nil {
		appLogger.Fatal("Failed to initialize report aggregator", logger.ErrorField(err))
	}

	go aggregator.Start(ctx)

	appLogger.Info("Report service started. Waiting for ticks...")

	<-ctx.Done()
	appLogger.Info("Report service stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "report-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-report.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing report-service CLI: %s\n", err)
		os.Exit(1)
	}
}
