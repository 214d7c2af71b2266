package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "healthtrack/docs" // swagger docs

	"healthtrack/internal/auth"
	"healthtrack/internal/cache"
	"healthtrack/internal/config"
	"healthtrack/internal/db"
	"healthtrack/internal/handler"
	"healthtrack/internal/logger"
	"healthtrack/internal/mailer"
	"healthtrack/internal/model"
	"healthtrack/internal/repository"
	"healthtrack/internal/router"
	"healthtrack/internal/scheduler"
	"healthtrack/internal/service"
)

// @title HealthTrack API
// @version 1.0
// @description Patient/doctor health tracking API with JWT authentication, medications, vitals, and appointments.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer zlog.Sync()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		zlog.Fatal("database init", zap.Error(err))
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Specialization{},
		&model.User{},
		&model.Medication{},
		&model.MedicationReminder{},
		&model.MedicationIntake{},
		&model.MedicalData{},
		&model.MedicalRecord{},
		&model.Appointment{},
		&model.AppointmentReminder{},
	); err != nil {
		zlog.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		zlog.Warn("redis unreachable, token revocation degraded", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	specRepo := repository.NewSpecializationRepository(gormDB)
	medicationRepo := repository.NewMedicationRepository(gormDB)
	medicalDataRepo := repository.NewMedicalDataRepository(gormDB)
	medicalRecordRepo := repository.NewMedicalRecordRepository(gormDB)
	appointmentRepo := repository.NewAppointmentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, specRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, specRepo, cacheClient)
	specializationService := service.NewSpecializationService(specRepo)
	medicationService := service.NewMedicationService(medicationRepo)
	medicalDataService := service.NewMedicalDataService(medicalDataRepo)
	medicalRecordService := service.NewMedicalRecordService(medicalRecordRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	specializationHandler := handler.NewSpecializationHandler(specializationService)
	medicationHandler := handler.NewMedicationHandler(medicationService)
	medicalDataHandler := handler.NewMedicalDataHandler(medicalDataService)
	medicalRecordHandler := handler.NewMedicalRecordHandler(medicalRecordService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenStore,
		authHandler,
		userHandler,
		specializationHandler,
		medicationHandler,
		medicalDataHandler,
		medicalRecordHandler,
		appointmentHandler,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Reminder scheduler
	smtp := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailSender)
	sched := scheduler.NewReminderScheduler(medicationService, appointmentService, userRepo, smtp, zlog)
	go sched.Run(ctx)

	go func() {
		addr := ":" + cfg.ServerPort
		zlog.Info("server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown", zap.Error(err))
	}
	zlog.Info("server stopped")
}
