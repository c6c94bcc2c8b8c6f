package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-ticker-relay/internal/ingest/config"
	delivery "golang-ticker-relay/internal/ingest/delivery/http"
	_ "golang-ticker-relay/internal/ingest/docs"
	"golang-ticker-relay/internal/ingest/repository"
	"golang-ticker-relay/internal/ingest/service"
	"golang-ticker-relay/internal/lexicon"
	"golang-ticker-relay/pkg/discord"
	"golang-ticker-relay/pkg/logger"
	"golang-ticker-relay/pkg/postgres"
	"golang-ticker-relay/pkg/redis"
	"golang-ticker-relay/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the ingest service",
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

	appLogger.Info("Starting Ingest Service", logger.Field("name", cfg.App.Name))

	// Load the lexicon once; it is immutable afterwards.
	lex, err := lexicon.LoadFromFile(cfg.Ingest.LexiconPath)
	if err != nil {
		appLogger.Fatal("Failed to load lexicon", logger.ErrorField(err))
	}
	extractor := lexicon.NewExtractor(lex)

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
	ruleRepo := repository.NewRuleConfigRepository(redisClient.Client, appLogger)
	recordRepo := repository.NewRecordRepository(db.DB, appLogger)

	// Initialize AI provider
	var aiRepo repository.AIRepository
	switch cfg.AI.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		repo, err := repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI repository", logger.ErrorField(err))
		}
		aiRepo = repo
	case "openai":
		aiRepo = repository.NewOpenAIRepository(cfg, appLogger)
	default:
		appLogger.Fatal("Invalid AI provider specified in config", logger.StringField("provider", cfg.AI.Provider))
	}

	// Initialize notifiers
	telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken)
	if err != nil {
		appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
	}
	discordNotifier := discord.NewClient()

	// Initialize services
	planner := service.NewDispatchPlanner(recordRepo, aiRepo, telegramNotifier, discordNotifier, appLogger)
	runner := service.NewTaskRunner(appLogger)
	ingestSvc := service.NewIngestService(extractor, ruleRepo, recordRepo, planner, runner, appLogger)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/swagger/*", swagger.WrapHandler)

	messageHandler := delivery.NewMessageHandler(ingestSvc, appLogger)
	apiV1 := e.Group("/api/v1")
	messagesGroup := apiV1.Group("/messages")
	messageHandler.RegisterRoutes(messagesGroup)

	// Start the server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	appLogger.Info("Ingest service started. Waiting for messages...")

	<-ctx.Done()

	appLogger.Info("Shutting down ingest service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Failed to shut down server gracefully", logger.ErrorField(err))
	}

	// Drain every scheduled task batch before tearing resources down.
	runner.Wait()
	appLogger.Info("Ingest service stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "ingest-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-ingest.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing ingest-service CLI: %s\n", err)
		os.Exit(1)
	}
}
