package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HelloTanvir/scan-and-dine/internal/config"
	"github.com/HelloTanvir/scan-and-dine/internal/database"
	"github.com/HelloTanvir/scan-and-dine/internal/logger"
	"github.com/HelloTanvir/scan-and-dine/internal/messaging"
	"github.com/HelloTanvir/scan-and-dine/internal/seed"
	"github.com/HelloTanvir/scan-and-dine/internal/services/menu"
	"github.com/HelloTanvir/scan-and-dine/internal/services/notification"
	"github.com/HelloTanvir/scan-and-dine/internal/services/order"
	"github.com/HelloTanvir/scan-and-dine/internal/services/stats"
	"github.com/HelloTanvir/scan-and-dine/internal/services/table"
	"github.com/HelloTanvir/scan-and-dine/internal/web"
)

func main() {
	var (
		mode     = flag.String("mode", "", "Service mode (api, notification-subscriber)")
		port     = flag.Int("port", 0, "HTTP port (overrides config)")
		prefetch = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": cfg.Server.Port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "api":
		if err := runAPI(ctx, cfg, log); err != nil {
			log.Error("service_failed", "API service failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if err := runNotificationSubscriber(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Notification subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runAPI runs the HTTP API with all service handlers mounted on one mux
func runAPI(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if cfg.Seed.Enabled {
		if err := seed.Run(ctx, db, log); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}

	rabbit, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer rabbit.Close()

	publisher := messaging.NewPublisher(rabbit, log)

	menuRepo := menu.NewPostgresRepository(db)
	tableRepo := table.NewPostgresRepository(db)
	orderRepo := order.NewPostgresRepository(db)
	statsRepo := stats.NewPostgresRepository(db)

	menuService := menu.NewService(menuRepo, log)
	tableService := table.NewService(tableRepo, log)
	orderService := order.NewService(orderRepo, menuRepo, publisher, log)
	statsService := stats.NewService(statsRepo, log)

	mux := http.NewServeMux()
	menu.NewHandler(menuService, log).Register(mux)
	table.NewHandler(tableService, log).Register(mux)
	order.NewHandler(orderService, log).Register(mux)
	stats.NewHandler(statsService, log).Register(mux)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			web.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("http_server_started", fmt.Sprintf("HTTP server listening on :%d", cfg.Server.Port), requestID, nil)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down HTTP server: %w", err)
		}
		log.Info("http_server_stopped", "HTTP server stopped", requestID, nil)
		return nil
	}
}

// runNotificationSubscriber runs the status change notification consumer
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	rabbit, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer rabbit.Close()

	consumer := messaging.NewConsumer(rabbit, log, messaging.NotificationsQueue, "notification-subscriber", prefetch)
	subscriber := notification.NewSubscriber(consumer, log)

	return subscriber.Start(ctx)
}
