package services

import (
	"errors"
	"testing"

	"github.com/sheltweezy/digestlibrary/models"
)

func TestGoalGetReturnsNilWhenUnconfigured(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db)
	profile := createTestProfile(t, db, "Sam")

	goal, err := svc.Get(profile.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if goal != nil {
		t.Fatalf("expected nil goal before any save, got %+v", goal)
	}

	if _, err := svc.Get(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown profile, got %v", err)
	}
}

func TestGoalSaveUpsertsWholeRecord(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db)
	profile := createTestProfile(t, db, "Sam")

	first, err := svc.Save(profile.ID, GoalInput{Calories: f64(2000), ProteinG: f64(120)})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first.Calories == nil || *first.Calories != 2000 {
		t.Fatalf("expected calorie target 2000, got %v", first.Calories)
	}

	second, err := svc.Save(profile.ID, GoalInput{Calories: f64(1800)})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same goal row updated, got ids %d and %d", first.ID, second.ID)
	}
	if second.Calories == nil || *second.Calories != 1800 {
		t.Fatalf("expected calorie target 1800, got %v", second.Calories)
	}
	// Protein was omitted the second time; the target is unset, not
	// carried over.
	if second.ProteinG != nil {
		t.Fatalf("expected protein target cleared, got %v", *second.ProteinG)
	}

	var count int64
	db.Model(&models.Goal{}).Where("profile_id = ?", profile.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single goal row, found %d", count)
	}
}

func TestGoalSaveValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db)
	profile := createTestProfile(t, db, "Sam")

	var vErr *ValidationError
	if _, err := svc.Save(profile.ID, GoalInput{Calories: f64(-100)}); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for negative target, got %v", err)
	}

	if _, err := svc.Save(999, GoalInput{Calories: f64(2000)}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown profile, got %v", err)
	}
}
