package main

import (
	"context"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	_ "github.com/binaryhub/portal-api/api/swagger"
	"github.com/binaryhub/portal-api/internal/handler"
	"github.com/binaryhub/portal-api/internal/repository"
	"github.com/binaryhub/portal-api/internal/router"
	"github.com/binaryhub/portal-api/internal/service"
	"github.com/binaryhub/portal-api/pkg/cache"
	"github.com/binaryhub/portal-api/pkg/config"
	"github.com/binaryhub/portal-api/pkg/database"
	"github.com/binaryhub/portal-api/pkg/jobs"
	"github.com/binaryhub/portal-api/pkg/logger"
	"github.com/binaryhub/portal-api/pkg/storage"
)

// @title Binary Hub Portal API
// @version 1.0.0
// @description Administrative backend for the Binary Hub training platform
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx := context.Background()

	mongoClient, db, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to mongodb", "error", err)
	}
	defer mongoClient.Disconnect(context.Background()) //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close() //nolint:errcheck
	}

	files, err := storage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.PublicPath)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare uploads directory", "error", err)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	teamMemberRepo := repository.NewTeamMemberRepository(db)
	mentorRepo := repository.NewMentorRepository(db)
	freelancerRepo := repository.NewFreelancerRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	metricsService := service.NewMetricsService()
	authService := service.NewAuthService(userRepo, adminRepo, notificationRepo, validate, logr, cfg.JWT)
	teamMemberService := service.NewTeamMemberService(teamMemberRepo, files, cfg.Uploads.MaxFileSizeBytes, validate, logr)
	mentorService := service.NewMentorService(mentorRepo, files, cfg.Uploads.MaxFileSizeBytes, validate, logr)
	freelancerService := service.NewFreelancerService(freelancerRepo, files, cfg.Uploads.MaxFileSizeBytes, validate, logr)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, notificationRepo, files, cfg.Uploads.MaxFileSizeBytes, cfg.Renewal.AccessDuration, validate, logr)
	notificationService := service.NewNotificationService(notificationRepo, cacheRepo, cfg.Notifications.CacheTTL, logr)
	renewalService := service.NewRenewalService(enrollmentRepo, notificationRepo, metricsService, cfg.Renewal.NoticeWindow, logr)
	exportService := service.NewExportService(enrollmentService, nil, nil, logr)

	r := router.New(router.Dependencies{
		Config:         cfg,
		Logger:         logr,
		AuthService:    authService,
		MetricsService: metricsService,

		Auth:          handler.NewAuthHandler(authService),
		AdminAuth:     handler.NewAdminAuthHandler(authService),
		TeamMembers:   handler.NewTeamMemberHandler(teamMemberService),
		Mentors:       handler.NewMentorHandler(mentorService),
		Freelancers:   handler.NewFreelancerHandler(freelancerService),
		Enrollments:   handler.NewEnrollmentHandler(enrollmentService, exportService),
		Notifications: handler.NewNotificationHandler(notificationService),
		Renewal:       handler.NewRenewalHandler(renewalService),
		Metrics:       handler.NewMetricsHandler(metricsService),

		UploadsDir:        files.Dir(),
		UploadsPublicPath: files.PublicPath(),
	})

	sweep := jobs.NewScheduler("course-renewal", renewalService.Sweep, cfg.Renewal.Interval, logr)
	sweep.Start(ctx)
	defer sweep.Stop()

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
