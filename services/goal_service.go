package services

import (
	"errors"

	"github.com/sheltweezy/digestlibrary/models"

	"gorm.io/gorm"
)

type GoalInput struct {
	Calories *float64 `json:"calories" validate:"omitempty,gt=0"`
	ProteinG *float64 `json:"protein_g" validate:"omitempty,gt=0"`
	CarbsG   *float64 `json:"carbs_g" validate:"omitempty,gt=0"`
	FatG     *float64 `json:"fat_g" validate:"omitempty,gt=0"`
	FiberG   *float64 `json:"fiber_g" validate:"omitempty,gt=0"`
	WaterMl  *float64 `json:"water_ml" validate:"omitempty,gt=0"`
}

type GoalService struct{ db *gorm.DB }

func NewGoalService(db *gorm.DB) *GoalService { return &GoalService{db: db} }

// Get returns the profile's goal record, or nil when no goal has been
// configured. Callers must not treat nil as zero targets.
func (s *GoalService) Get(profileID uint) (*models.Goal, error) {
	if err := profileExists(s.db, profileID); err != nil {
		return nil, err
	}
	var g models.Goal
	if err := s.db.Where("profile_id = ?", profileID).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// Save upserts the whole goal record: fields absent from the input
// become unset, not retained.
func (s *GoalService) Save(profileID uint, in GoalInput) (*models.Goal, error) {
	if err := profileExists(s.db, profileID); err != nil {
		return nil, err
	}
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	var g models.Goal
	err := s.db.Where("profile_id = ?", profileID).First(&g).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	g.ProfileID = profileID
	g.Calories = in.Calories
	g.ProteinG = in.ProteinG
	g.CarbsG = in.CarbsG
	g.FatG = in.FatG
	g.FiberG = in.FiberG
	g.WaterMl = in.WaterMl

	if err := s.db.Save(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}
