package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv" // Import godotenv
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/latch-net/latch-be/internal/config"
	"github.com/latch-net/latch-be/internal/controller"
	"github.com/latch-net/latch-be/internal/database"
	"github.com/latch-net/latch-be/internal/dispatch"
	"github.com/latch-net/latch-be/internal/handler"
	"github.com/latch-net/latch-be/internal/metrics"
	"github.com/latch-net/latch-be/internal/repository"
	"github.com/latch-net/latch-be/internal/service"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables from OS")
	}

	// Create a new logger
	logger := log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)

	// load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// connect to database
	db, err := database.ConnectDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Println("Successfully connected to database")

	repo := repository.NewRepository(db)

	registry := prometheus.NewRegistry()
	measures := metrics.NewCommandMeasures(registry)

	// Shared HTTP client for the process lifetime. No client-level Timeout:
	// every command carries its own deadline via its message config.
	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	connConfig := dispatch.NewConnectionConfig(cfg.Device.Host, cfg.Device.Port, "/", logger)
	connConfig.SetAPIKey(cfg.Device.APIKey)
	connConfig.SetUseTLS(cfg.Device.UseTLS)
	msgConfig := dispatch.NewMessageConfig("", logger)
	msgConfig.SetTimeout(cfg.Device.Timeout)

	dispatcher := dispatch.NewDispatcher(httpClient, connConfig, msgConfig, logger)
	lockController := controller.NewLockController(dispatcher)

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.CommandsPerSecond), cfg.RateLimit.Burst)

	authService := service.NewAuthService(repo.User(), cfg.JWT)
	commandService := service.NewCommandService(dispatcher, lockController, repo.Command(), limiter, measures, logger)

	router := handler.SetupRouter(commandService, authService, db, registry, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Printf("Server starting on port %s", cfg.Server.Port)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Cannot run server on port %s: %v", cfg.Server.Port, err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Println("Shut down the server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = server.Shutdown(ctx)
	if err != nil {
		logger.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Println("Server successfully shut down")
}
