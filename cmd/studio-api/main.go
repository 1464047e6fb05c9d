package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/studiohq/studio-api/api/swagger"
	"github.com/studiohq/studio-api/internal/handler"
	"github.com/studiohq/studio-api/internal/middleware"
	"github.com/studiohq/studio-api/internal/repository"
	"github.com/studiohq/studio-api/internal/service"
	"github.com/studiohq/studio-api/pkg/cache"
	"github.com/studiohq/studio-api/pkg/config"
	"github.com/studiohq/studio-api/pkg/database"
	"github.com/studiohq/studio-api/pkg/logger"
	corsmiddleware "github.com/studiohq/studio-api/pkg/middleware/cors"
	reqidmiddleware "github.com/studiohq/studio-api/pkg/middleware/requestid"
	"github.com/studiohq/studio-api/pkg/notify"
)

// @title Studio API
// @version 1.0.0
// @description Back office for a yoga studio: customers, instructors, classes, packages, sales, attendance and reports.
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var cacheRepo *repository.CacheRepository
	if cfg.Reports.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, reports served uncached", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}

	var notifier notify.Notifier
	if cfg.Notifications.Provider == "sendgrid" && cfg.Notifications.SendgridKey != "" {
		notifier = notify.NewSendgridNotifier(cfg.Notifications.SendgridKey, cfg.Notifications.FromEmail, cfg.Notifications.FromName, logr)
	} else {
		notifier = notify.NewLogNotifier(logr)
	}
	notifications := service.NewNotificationService(notifier, cfg.Notifications, logr)
	notifications.Start(context.Background())
	defer notifications.Stop()

	validate := validator.New()

	customerRepo := repository.NewCustomerRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	classRepo := repository.NewClassRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	customerSvc := service.NewCustomerService(customerRepo, notifications, validate, logr)
	instructorSvc := service.NewInstructorService(instructorRepo, validate, logr)
	classSvc := service.NewClassService(classRepo, instructorRepo, cfg.Studio, validate, logr)
	packageSvc := service.NewPackageService(packageRepo, validate, logr)
	saleSvc := service.NewSaleService(saleRepo, customerRepo, packageRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, classRepo, customerRepo, notifications, validate, logr)
	var reportSvc *service.ReportService
	if cacheRepo != nil {
		reportSvc = service.NewReportService(customerRepo, instructorRepo, classRepo, saleRepo, attendanceRepo, cacheRepo, cfg.Reports, logr)
	} else {
		reportSvc = service.NewReportService(customerRepo, instructorRepo, classRepo, saleRepo, attendanceRepo, nil, cfg.Reports, logr)
	}
	metricsSvc := service.NewMetricsService()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r, cfg.APIPrefix, handler.Handlers{
		Customers:   handler.NewCustomerHandler(customerSvc),
		Instructors: handler.NewInstructorHandler(instructorSvc),
		Classes:     handler.NewClassHandler(classSvc),
		Packages:    handler.NewPackageHandler(packageSvc),
		Sales:       handler.NewSaleHandler(saleSvc, metricsSvc),
		Attendance:  handler.NewAttendanceHandler(attendanceSvc, classSvc, metricsSvc),
		Reports:     handler.NewReportHandler(reportSvc),
		Metrics:     handler.NewMetricsHandler(metricsSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
