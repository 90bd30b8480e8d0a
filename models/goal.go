package models

import "time"

// Goal holds a profile's daily nutrient targets. Every field is a
// pointer: nil means "no target set", which is distinct from a target
// of zero. One row per profile, replaced whole on save.
type Goal struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	ProfileID uint      `gorm:"uniqueIndex;not null" json:"-"`
	Calories  *float64  `json:"calories"`
	ProteinG  *float64  `json:"protein_g"`
	CarbsG    *float64  `json:"carbs_g"`
	FatG      *float64  `json:"fat_g"`
	FiberG    *float64  `json:"fiber_g"`
	WaterMl   *float64  `json:"water_ml"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
