// Command seed provisions the initial system_admin account so the platform
// has an administrator to log in with. Safe to re-run: an existing admin with
// the same email is left untouched.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"storehub/internal/auth"
	"storehub/internal/config"
	"storehub/internal/db"
	"storehub/internal/model"
	"storehub/internal/repository"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	adminEmail := getEnv("ADMIN_EMAIL", "admin@storehub.local")
	adminPassword := getEnv("ADMIN_PASSWORD", "Admin@123")
	adminName := getEnv("ADMIN_NAME", "System Administrator Account")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Store{}, &model.Rating{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	existing, err := userRepo.FindByEmail(ctx, adminEmail)
	if err == nil && existing != nil {
		log.Printf("admin account %s already exists (id=%d), nothing to do", adminEmail, existing.ID)
		return
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("check admin account: %v", err)
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}

	admin := &model.User{
		Name:         adminName,
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         model.RoleSystemAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("create admin account: %v", err)
	}

	log.Printf("created admin account %s (id=%d)", adminEmail, admin.ID)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
