package app

import (
	"context"
	"fmt"

	"github.com/Falasefemi2/hr-portal/internal/config"
	"github.com/Falasefemi2/hr-portal/internal/department"
	"github.com/Falasefemi2/hr-portal/internal/leave"
	"github.com/Falasefemi2/hr-portal/internal/leavetype"
	"github.com/Falasefemi2/hr-portal/internal/observability"
	"github.com/Falasefemi2/hr-portal/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const outboxDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id TEXT,
	aggregate_type TEXT NOT NULL,
	aggregate_id TEXT NOT NULL,
	event_type TEXT NOT NULL,
	topic TEXT NOT NULL,
	payload JSONB NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	error_message TEXT,
	next_retry_at TIMESTAMPTZ,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created ON outbox_events (status, created_at);
`

// BuildApp connects the infrastructure, migrates the schema and mounts every
// module on router. The returned cleanup releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config, metrics *observability.Metrics) (func(), error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DSN(), cfg.DBMaxRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if err := migrate(gormDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("database schema ready")

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBMaxRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	err = registerModules(router, modules{
		cfg:     cfg,
		sqlDB:   sqlDB,
		gormDB:  gormDB,
		rdb:     rdb,
		metrics: metrics,
		health: map[string]HealthCheck{
			"postgres": sqlDB.PingContext,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	})
	if err != nil {
		_ = rdb.Close()
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("close redis failed", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			logger.Warn("close database failed", zap.Error(err))
		}
	}
	return cleanup, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&department.Department{}, &leavetype.LeaveType{}, &leave.LeaveRequest{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec(outboxDDL).Error; err != nil {
		return fmt.Errorf("create outbox table: %w", err)
	}
	return nil
}
