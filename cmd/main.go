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

	"portfolio-tracker/internal/config"
	delivery "portfolio-tracker/internal/delivery/http"
	"portfolio-tracker/internal/repository"
	"portfolio-tracker/internal/service"
	"portfolio-tracker/pkg/logger"
	"portfolio-tracker/pkg/postgres"
	"portfolio-tracker/pkg/redis"
	"portfolio-tracker/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the portfolio tracker service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Portfolio Tracker", logger.Field("name", cfg.App.Name))

	db, err := postgres.NewDB(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	var notifier telegram.Notifier = telegram.NoopNotifier{}
	if cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	portfolioRepo := repository.NewPortfolioRepository(db.DB)
	holdingRepo := repository.NewHoldingRepository(db.DB)
	strategyRepo := repository.NewStrategyRepository(db.DB)
	tradeRepo := repository.NewTradeRepository(db.DB)
	pricePointRepo := repository.NewPricePointRepository(db.DB)
	marketDataRepo := repository.NewAlpacaMarketDataRepository(cfg, appLogger)
	quoteRepo := repository.NewYahooQuoteRepository(cfg.Engine.QuoteCacheTTL, appLogger)

	var brokerRepo repository.BrokerRepository
	if cfg.Alpaca.APIKey != "" && cfg.Alpaca.APISecret != "" {
		brokerRepo = repository.NewAlpacaBrokerRepository(cfg, appLogger)
	} else {
		appLogger.Warn("Alpaca credentials not provided, paper trading will be simulated locally")
		brokerRepo = repository.NewSimulatedBrokerRepository(appLogger)
	}

	// Initialize services
	marketDataSvc := service.NewMarketDataService(cfg, appLogger, redisClient.Client, marketDataRepo, quoteRepo, pricePointRepo)
	portfolioSvc := service.NewPortfolioService(portfolioRepo, appLogger)
	holdingSvc := service.NewHoldingService(cfg, holdingRepo, marketDataSvc, appLogger)
	strategySvc := service.NewStrategyService(strategyRepo, appLogger)
	tradeSvc := service.NewTradeService(tradeRepo, appLogger)
	signalSvc := service.NewSignalService(cfg, appLogger, redisClient.Client, marketDataSvc, brokerRepo, strategyRepo, portfolioRepo, tradeRepo, notifier)

	if cfg.Scheduler.Enabled {
		schedulerSvc := service.NewSchedulerService(cfg, appLogger, portfolioRepo, strategyRepo, holdingSvc, signalSvc)
		go func() {
			if err := schedulerSvc.Start(ctx); err != nil {
				appLogger.Error("Scheduler failed to start", logger.ErrorField(err))
			}
		}()
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	healthHandler := delivery.NewHealthHandler(cfg.App.Name)
	healthHandler.RegisterRoutes(e)

	apiV1 := e.Group("/api/v1")

	portfolioHandler := delivery.NewPortfolioHandler(portfolioSvc, holdingSvc, strategySvc, appLogger)
	portfolioHandler.RegisterRoutes(apiV1.Group("/portfolios"))

	holdingHandler := delivery.NewHoldingHandler(holdingSvc, appLogger)
	holdingHandler.RegisterRoutes(apiV1.Group("/holdings"))

	strategyHandler := delivery.NewStrategyHandler(strategySvc, signalSvc, tradeSvc, appLogger)
	strategyHandler.RegisterRoutes(apiV1.Group("/strategies"))

	tradeHandler := delivery.NewTradeHandler(tradeSvc, appLogger)
	tradeHandler.RegisterRoutes(apiV1.Group("/trades"))

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "portfolio-tracker"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing portfolio-tracker CLI: %s\n", err)
		os.Exit(1)
	}
}
