// Package db opens the GORM connection to the user store.
package db

import (
	"fmt"
	"log"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"auth_portal/internal/feature/auth/domain/entity"
)

// Open connects to MySQL with the given DSN, retrying until the database
// accepts connections. When migrate is true the users table is created or
// updated on startup.
func Open(dsn string, migrate bool) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gmysql.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after 60s: %w", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if migrate {
		if err := db.AutoMigrate(&entity.User{}); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return db, nil
}
