package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/leadrun/fulfillment-service/internal/config"
	"github.com/leadrun/fulfillment-service/internal/delivery/httpapi"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/injector"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/kafka"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/logger"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/metrics"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/migrate"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/postgres"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/postgres/repository"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/proxyprovider"
	"github.com/leadrun/fulfillment-service/internal/usecase/broker"
	usecase "github.com/leadrun/fulfillment-service/internal/usecase/order"
	"github.com/leadrun/fulfillment-service/internal/usecase/provision"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	setupLogger(cfg.LogConfig)
	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.FulfillmentDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.FulfillmentDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init repositories
	leadRepo := repository.NewDefaultLeadRepository(db)
	orderRepo := repository.NewDefaultOrderRepository(db)
	brokerRepo := repository.NewDefaultBrokerRepository(db)
	proxyRepo := repository.NewDefaultProxyRepository(db)
	fingerprintRepo := repository.NewDefaultFingerprintRepository(db)

	// Init kafka publisher
	publisher := kafka.NewPublisher(cfg.KafkaService.Brokers, cfg.KafkaService.InjectionTopic, cfg.KafkaService.OrderTopic)
	defer publisher.Close()

	// Init provisioning stack
	sessionProvider := proxyprovider.NewSessionProvider(cfg.ProxyProvider)
	provisioner := provision.NewProvisioner(fingerprintRepo, proxyRepo, sessionProvider)

	// Init injector runner
	runner := injector.NewScriptRunner(cfg.Injector.ScriptPath, cfg.Injector.TaskTimeout)

	// Init fulfillment usecase
	uc := usecase.NewDefaultFulfillmentUsecase(
		leadRepo,
		orderRepo,
		brokerRepo,
		provisioner,
		broker.NewResolver(brokerRepo),
		runner,
		publisher,
		logger.NewPGInjectionAuditLogger(db),
		metrics.NewInjectionMetrics(),
		usecase.InjectionConfig{
			TargetURL:       cfg.Injector.TargetURL,
			FollowUpURL:     cfg.Injector.FollowUpURL,
			CallbackURL:     cfg.Injector.CallbackURL,
			BulkPacing:      cfg.Injector.BulkPacing,
			FollowUpTimeout: cfg.Injector.FollowUpTimeout,
		},
	)

	// Proxy health worker
	go runProxyHealthMonitor(context.Background(), provisioner, cfg.ProxyProvider)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	slog.Info("fulfillment service listening", "addr", addr, "env", cfg.Env)
	if err := http.ListenAndServe(addr, httpapi.NewRouter(uc)); err != nil {
		log.Fatalf("http server stopped: %v", err)
	}
}

func runProxyHealthMonitor(ctx context.Context, provisioner *provision.Provisioner, cfg config.ProxyProvider) {
	ticker := time.NewTicker(cfg.HealthInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := provisioner.MonitorProxyHealth(ctx, cfg.HealthStaleness); err != nil {
				slog.Error("proxy health sweep failed", "error", err)
			}
		}
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
