package services

import (
	"time"

	"github.com/sheltweezy/digestlibrary/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

// EntryService owns raw consumption entries: append on ingest, query
// by profile and calendar-date range for the aggregation layer.
type EntryService struct{ db *gorm.DB }

func NewEntryService(db *gorm.DB) *EntryService { return &EntryService{db: db} }

// Append inserts one entry, deriving LogDate from LoggedAt. Returns
// false when the dedupe key (profile, logged_at, item_name) already
// exists; the conflict is resolved by the unique index, so concurrent
// ingests of the same file cannot double-insert.
func (s *EntryService) Append(profileID uint, e *models.Entry) (bool, error) {
	if err := profileExists(s.db, profileID); err != nil {
		return false, err
	}
	e.ProfileID = profileID
	return s.insert(e)
}

// insert writes one entry without re-checking the profile; the
// ingestion pipeline verifies the profile once per batch.
func (s *EntryService) insert(e *models.Entry) (bool, error) {
	e.LogDate = e.LoggedAt.Format(dateLayout)

	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(e)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// QueryRange returns the profile's entries whose calendar date falls
// in [start, end], ordered by logged_at ascending. Both bounds are
// inclusive on calendar date, not wall-clock time.
func (s *EntryService) QueryRange(profileID uint, start, end time.Time) ([]models.Entry, error) {
	if err := profileExists(s.db, profileID); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrInvalidArgument
	}

	var entries []models.Entry
	err := s.db.
		Where("profile_id = ? AND log_date >= ? AND log_date <= ?",
			profileID, start.Format(dateLayout), end.Format(dateLayout)).
		Order("logged_at ASC").
		Find(&entries).Error
	return entries, err
}

// QueryByDay returns the profile's entries for one calendar day,
// optionally restricted to one meal context ("" means all meals).
func (s *EntryService) QueryByDay(profileID uint, day time.Time, meal string) ([]models.Entry, error) {
	if err := profileExists(s.db, profileID); err != nil {
		return nil, err
	}

	q := s.db.
		Where("profile_id = ? AND log_date = ?", profileID, day.Format(dateLayout)).
		Order("logged_at ASC")
	if meal != "" {
		q = q.Where("meal_context = ?", meal)
	}

	var entries []models.Entry
	err := q.Find(&entries).Error
	return entries, err
}

// Recent returns the most recently logged entries, newest first.
func (s *EntryService) Recent(profileID uint, limit int) ([]models.Entry, error) {
	if err := profileExists(s.db, profileID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, ErrInvalidArgument
	}

	var entries []models.Entry
	err := s.db.
		Where("profile_id = ?", profileID).
		Order("logged_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
