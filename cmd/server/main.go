package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"auth_portal/internal/app/router"
	"auth_portal/internal/config"
	authadapters "auth_portal/internal/feature/auth/adapters"
	authhandler "auth_portal/internal/feature/auth/transport/handler"
	authusecase "auth_portal/internal/feature/auth/usecase"
	"auth_portal/internal/platform/db"
	"auth_portal/internal/platform/password"
	"auth_portal/internal/platform/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// SECRET_KEY check (reminder during development)
	if cfg.IsDevSecret() {
		log.Println("[WARN] SECRET_KEY is the dev placeholder. Set a strong secret in production.")
	}

	gin.SetMode(cfg.GinMode)

	// db
	gormDB, err := db.Open(cfg.DatabaseDSN, cfg.RunMigrations)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	// Repository and platform services
	userRepo := authadapters.NewUserMySQL(gormDB)
	hasher := password.New(0, cfg.HashConcurrency)
	sessions := session.NewManager(cfg.SecretKey, cfg.SessionTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, hasher)

	// Handler
	secureCookies := cfg.GinMode == gin.ReleaseMode
	authH := authhandler.NewAuthHandler(authUC, sessions, int(cfg.SessionTTL.Seconds()), secureCookies)

	r := router.NewRouter(authH, cfg.SecretKey, secureCookies)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
