package models

import "time"

// Profile is one tracked person. Entries and goals hang off it and are
// removed with it.
type Profile struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	Name          string     `gorm:"not null" json:"name"`
	DateOfBirth   *string    `gorm:"type:date" json:"date_of_birth"`
	BiologicalSex *string    `json:"biological_sex"`
	HeightInches  *float64   `json:"height_inches"`
	WeightLbs     *float64   `json:"weight_lbs"`
	PhotoURL      *string    `json:"photo_url"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"-"`
}
