package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/sheltweezy/digestlibrary/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB loads .env, opens the configured database and migrates the
// schema. DB_DRIVER selects postgres (default) or sqlite for local
// setups.
func InitDB() *gorm.DB {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading environment directly")
	}

	var (
		db  *gorm.DB
		err error
	)
	switch driver := getenv("DB_DRIVER", "postgres"); driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			getenv("DB_PORT", "5432"),
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "sqlite":
		path := getenv("SQLITE_PATH", "./data/digest.db")
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			log.Fatalf("Failed to create database directory: %v", mkErr)
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	default:
		log.Fatalf("Unknown DB_DRIVER %q", driver)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Profile{},
		&models.Goal{},
		&models.Entry{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	return db
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
