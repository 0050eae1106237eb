package app

import (
	"context"

	"github.com/Falasefemi2/hr-portal/internal/bootstrap"
	"github.com/Falasefemi2/hr-portal/internal/config"
	"github.com/Falasefemi2/hr-portal/internal/messaging/kafka"
	"github.com/Falasefemi2/hr-portal/internal/messaging/kafka/producer"
	"github.com/Falasefemi2/hr-portal/internal/observability"
	"github.com/Falasefemi2/hr-portal/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunWorker relays outbox events to Kafka and exposes its own metrics until
// ctx is cancelled.
func RunWorker(ctx context.Context, cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DSN(), cfg.DBMaxRetries)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.DBMaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	metrics := observability.NewMetrics()
	relay := producer.NewRelay(
		kafka.NewOutboxRepository(sqlDB),
		kafkaWriter,
		metrics,
		cfg.OutboxPollInterval,
		cfg.OutboxBatchSize,
		logger,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", healthHandler(map[string]HealthCheck{"postgres": sqlDB.PingContext}))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return relay.Run(gctx)
	})
	g.Go(func() error {
		return bootstrap.StartHTTPServer(gctx, router, bootstrap.ServerConfig{
			Port:         cfg.WorkerMetricsPort,
			ReadTimeout:  cfg.HTTPReadTimeout,
			WriteTimeout: cfg.HTTPWriteTimeout,
			IdleTimeout:  cfg.HTTPIdleTimeout,
		}, bootstrap.NewStdoutAuditLogger(logger))
	})

	err = g.Wait()
	logger.Info("worker shutting down")
	return err
}
