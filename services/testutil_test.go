package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sheltweezy/digestlibrary/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "digest-test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Profile{}, &models.Goal{}, &models.Entry{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func createTestProfile(t *testing.T, db *gorm.DB, name string) *models.Profile {
	t.Helper()
	p := &models.Profile{Name: name}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create test profile: %v", err)
	}
	return p
}

func mustLoggedAt(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func mustDay(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func f64(v float64) *float64 { return &v }

// addEntry writes one entry through the store so LogDate derivation
// and dedupe behave exactly as in production.
func addEntry(t *testing.T, db *gorm.DB, profileID uint, loggedAt, item, meal string, calories, protein *float64) {
	t.Helper()
	svc := NewEntryService(db)
	inserted, err := svc.Append(profileID, &models.Entry{
		LoggedAt:    mustLoggedAt(t, loggedAt),
		MealContext: meal,
		ItemName:    item,
		Calories:    calories,
		ProteinG:    protein,
	})
	if err != nil {
		t.Fatalf("append entry %q: %v", item, err)
	}
	if !inserted {
		t.Fatalf("entry %q unexpectedly deduplicated", item)
	}
}
