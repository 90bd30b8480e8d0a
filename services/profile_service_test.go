package services

import (
	"errors"
	"testing"

	"github.com/sheltweezy/digestlibrary/models"
)

func TestProfileCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	dob := "1990-06-15"
	created, err := svc.Create(ProfileInput{Name: "  Sam  ", DateOfBirth: &dob, HeightInches: f64(68)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Sam" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DateOfBirth == nil || *got.DateOfBirth != dob {
		t.Fatalf("expected date of birth %s, got %v", dob, got.DateOfBirth)
	}
	if got.WeightLbs != nil {
		t.Fatalf("expected unset weight to stay nil, got %v", *got.WeightLbs)
	}
}

func TestProfileCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	var vErr *ValidationError
	if _, err := svc.Create(ProfileInput{Name: "   "}); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for blank name, got %v", err)
	} else if vErr.Field != "name" {
		t.Fatalf("expected the name field flagged, got %q", vErr.Field)
	}

	badDob := "15/06/1990"
	if _, err := svc.Create(ProfileInput{Name: "Sam", DateOfBirth: &badDob}); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for bad date of birth, got %v", err)
	}

	if _, err := svc.Create(ProfileInput{Name: "Sam", HeightInches: f64(-3)}); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for negative height, got %v", err)
	}
}

func TestProfileUpdateReplacesOptionalFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	dob := "1990-06-15"
	created, err := svc.Create(ProfileInput{Name: "Sam", DateOfBirth: &dob})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(created.ID, ProfileInput{Name: "Samantha", WeightLbs: f64(140)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Samantha" {
		t.Fatalf("expected renamed profile, got %q", updated.Name)
	}
	// The update is a whole-record replace: omitted fields clear.
	if updated.DateOfBirth != nil {
		t.Fatalf("expected cleared date of birth, got %v", *updated.DateOfBirth)
	}
	if updated.WeightLbs == nil || *updated.WeightLbs != 140 {
		t.Fatalf("expected weight 140, got %v", updated.WeightLbs)
	}

	if _, err := svc.Update(999, ProfileInput{Name: "Nobody"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)
	profile := createTestProfile(t, db, "Sam")
	other := createTestProfile(t, db, "Alex")

	addEntry(t, db, profile.ID, "2024-01-05 08:00", "Oats", models.MealBreakfast, f64(300), nil)
	addEntry(t, db, other.ID, "2024-01-05 08:00", "Oats", models.MealBreakfast, f64(300), nil)
	if _, err := NewGoalService(db).Save(profile.ID, GoalInput{Calories: f64(2000)}); err != nil {
		t.Fatalf("save goal: %v", err)
	}

	if err := svc.Delete(profile.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.Get(profile.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	var entryCount, goalCount int64
	db.Model(&models.Entry{}).Where("profile_id = ?", profile.ID).Count(&entryCount)
	db.Model(&models.Goal{}).Where("profile_id = ?", profile.ID).Count(&goalCount)
	if entryCount != 0 || goalCount != 0 {
		t.Fatalf("expected cascaded delete, found %d entries, %d goals", entryCount, goalCount)
	}

	// The other profile's data is untouched.
	var otherEntries int64
	db.Model(&models.Entry{}).Where("profile_id = ?", other.ID).Count(&otherEntries)
	if otherEntries != 1 {
		t.Fatalf("expected other profile's entry to survive, found %d", otherEntries)
	}

	if err := svc.Delete(profile.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
}

func TestProfileSetPhotoURL(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)
	profile := createTestProfile(t, db, "Sam")

	updated, err := svc.SetPhotoURL(profile.ID, "/photos/abc.jpg")
	if err != nil {
		t.Fatalf("set photo url: %v", err)
	}
	if updated.PhotoURL == nil || *updated.PhotoURL != "/photos/abc.jpg" {
		t.Fatalf("expected photo url stored, got %v", updated.PhotoURL)
	}
}
