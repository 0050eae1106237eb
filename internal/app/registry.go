package app

import (
	"database/sql"

	"github.com/Falasefemi2/hr-portal/internal/access"
	"github.com/Falasefemi2/hr-portal/internal/config"
	"github.com/Falasefemi2/hr-portal/internal/department"
	"github.com/Falasefemi2/hr-portal/internal/identity"
	"github.com/Falasefemi2/hr-portal/internal/leave"
	"github.com/Falasefemi2/hr-portal/internal/leavetype"
	"github.com/Falasefemi2/hr-portal/internal/messaging/kafka"
	"github.com/Falasefemi2/hr-portal/internal/middleware"
	"github.com/Falasefemi2/hr-portal/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

type modules struct {
	cfg     *config.Config
	sqlDB   *sql.DB
	gormDB  *gorm.DB
	rdb     *redis.Client
	metrics *observability.Metrics
	health  map[string]HealthCheck
}

func registerModules(router *gin.Engine, m modules) error {
	logger := zap.L()

	// --- Identity & access ---
	gateway := identity.NewClient(m.cfg.IdentityServiceURL, m.cfg.IdentityTimeout, logger)
	resolver := identity.NewResolver(gateway, identity.NewTokenVerifier(m.cfg.JWTSecret), logger)
	gate, err := access.NewGate(access.DefaultPolicy(), logger)
	if err != nil {
		return err
	}

	// --- Repositories ---
	departmentRepo := department.NewRepository(m.gormDB)
	leaveTypeRepo := leavetype.NewRepository(m.gormDB)
	leaveRepo := leave.NewRepository(m.gormDB)
	outboxRepo := kafka.NewOutboxRepository(m.sqlDB)

	// --- Services ---
	directory := department.NewDirectory(departmentRepo, gateway, logger)
	departmentService := department.NewService(m.sqlDB, departmentRepo, m.rdb, logger)
	leaveTypeService := leavetype.NewService(m.sqlDB, leaveTypeRepo, m.rdb, logger)
	leaveService := leave.NewService(leave.Deps{
		DB:         m.sqlDB,
		Repo:       leaveRepo,
		Outbox:     outboxRepo,
		Gate:       gate,
		LeaveTypes: leaveTypeRepo,
		Directory:  directory,
		Gateway:    gateway,
		Metrics:    m.metrics,
	}, logger)

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService, logger)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)

	// --- Global middleware ---
	router.Use(
		middleware.RequestID(),
		m.metrics.Middleware(),
		middleware.AuthMiddleware(resolver),
		middleware.ContextLogger(logger),
	)

	router.GET("/healthz", healthHandler(m.health))
	router.GET("/metrics", gin.WrapH(m.metrics.Handler()))

	// --- Routes Registration ---
	writeRate := rate.Limit(m.cfg.RateLimitPerSecond)
	api := router.Group("/api/v1", middleware.RateLimitByIP(writeRate*5, m.cfg.RateLimitBurst*5))
	{
		department.RegisterRoutes(api, departmentHandler, gate)
		leavetype.RegisterRoutes(api, leaveTypeHandler, gate)
		leave.RegisterRoutes(api, leaveHandler, m.rdb, writeRate, m.cfg.RateLimitBurst)
	}

	return nil
}
