package services

import (
	"errors"
	"strings"

	"github.com/sheltweezy/digestlibrary/models"

	"gorm.io/gorm"
)

type ProfileInput struct {
	Name          string   `json:"name" validate:"required"`
	DateOfBirth   *string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	BiologicalSex *string  `json:"biological_sex" validate:"omitempty,oneof=female male intersex unspecified"`
	HeightInches  *float64 `json:"height_inches" validate:"omitempty,gt=0"`
	WeightLbs     *float64 `json:"weight_lbs" validate:"omitempty,gt=0"`
}

type ProfileService struct{ db *gorm.DB }

func NewProfileService(db *gorm.DB) *ProfileService { return &ProfileService{db: db} }

func (s *ProfileService) List() ([]models.Profile, error) {
	var profiles []models.Profile
	err := s.db.Order("id ASC").Find(&profiles).Error
	return profiles, err
}

func (s *ProfileService) Get(id uint) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *ProfileService) Create(in ProfileInput) (*models.Profile, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	p := models.Profile{
		Name:          in.Name,
		DateOfBirth:   in.DateOfBirth,
		BiologicalSex: in.BiologicalSex,
		HeightInches:  in.HeightInches,
		WeightLbs:     in.WeightLbs,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileService) Update(id uint, in ProfileInput) (*models.Profile, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	p.Name = in.Name
	p.DateOfBirth = in.DateOfBirth
	p.BiologicalSex = in.BiologicalSex
	p.HeightInches = in.HeightInches
	p.WeightLbs = in.WeightLbs

	if err := s.db.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the profile along with every entry and goal it owns,
// in one transaction.
func (s *ProfileService) Delete(id uint) error {
	if err := profileExists(s.db, id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", id).Delete(&models.Entry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", id).Delete(&models.Goal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Profile{}, id).Error
	})
}

func (s *ProfileService) SetPhotoURL(id uint, url string) (*models.Profile, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	p.PhotoURL = &url
	if err := s.db.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func profileExists(db *gorm.DB, id uint) error {
	var count int64
	if err := db.Model(&models.Profile{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
