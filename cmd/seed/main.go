package main

import (
	"context"
	"errors"
	"log"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"healthtrack/internal/config"
	"healthtrack/internal/db"
	"healthtrack/internal/logger"
	"healthtrack/internal/model"
	"healthtrack/internal/repository"
)

var specializations = []string{
	"Cardiology",
	"Dermatology",
	"Neurology",
	"Pediatrics",
	"General Medicine",
}

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer zlog.Sync()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		zlog.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(&model.Specialization{}, &model.User{}); err != nil {
		zlog.Fatal("auto-migrate", zap.Error(err))
	}

	ctx := context.Background()
	specRepo := repository.NewSpecializationRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	created := 0
	for _, name := range specializations {
		if _, err := specRepo.FindByName(ctx, name); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			zlog.Fatal("check specialization", zap.String("name", name), zap.Error(err))
		}
		if err := specRepo.Create(ctx, &model.Specialization{Name: name}); err != nil {
			zlog.Fatal("create specialization", zap.String("name", name), zap.Error(err))
		}
		created++
	}
	zlog.Info("specializations seeded", zap.Int("created", created), zap.Int("total", len(specializations)))

	cardiology, err := specRepo.FindByName(ctx, "Cardiology")
	if err != nil {
		zlog.Fatal("find cardiology", zap.Error(err))
	}

	birthday := time.Date(1985, time.March, 14, 0, 0, 0, 0, time.UTC)
	demo := []model.User{
		{
			Email:            "doctor@healthtrack.local",
			Role:             model.RoleDoctor,
			Name:             "Dr. Demo",
			PhoneNumber:      "+10000000001",
			SpecializationID: &cardiology.ID,
		},
		{
			Email:       "patient@healthtrack.local",
			Role:        model.RolePatient,
			Name:        "Pat Demo",
			PhoneNumber: "+10000000002",
			Birthday:    &birthday,
		},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	if err != nil {
		zlog.Fatal("hash demo password", zap.Error(err))
	}

	for i := range demo {
		user := &demo[i]
		if _, err := userRepo.FindByEmail(ctx, user.Email); err == nil {
			zlog.Info("demo user exists", zap.String("email", user.Email))
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			zlog.Fatal("check demo user", zap.String("email", user.Email), zap.Error(err))
		}
		user.PasswordHash = string(hash)
		if err := userRepo.Create(ctx, user); err != nil {
			zlog.Fatal("create demo user", zap.String("email", user.Email), zap.Error(err))
		}
		zlog.Info("demo user created", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	}

	zlog.Info("seed completed")
}
