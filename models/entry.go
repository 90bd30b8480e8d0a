package models

import "time"

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealLateNight = "late_night"
	MealOther     = "other"
)

// MealOrder is the display order for meal-pattern groupings.
var MealOrder = []string{MealBreakfast, MealLunch, MealDinner, MealLateNight, MealOther}

// Entry is one logged item (food or drink) for a profile. Nutrition
// fields are pointers: nil means the value was absent in the source,
// not zero. LogDate is derived from LoggedAt so day-level queries
// filter on calendar date rather than wall-clock time.
//
// The (profile_id, logged_at, item_name) unique index is the
// ingestion dedupe key: re-uploading the same CSV inserts nothing,
// even under concurrent uploads.
type Entry struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ProfileID   uint      `gorm:"not null;index;uniqueIndex:uidx_entry_dedupe" json:"profile_id"`
	LoggedAt    time.Time `gorm:"not null;uniqueIndex:uidx_entry_dedupe" json:"logged_at"`
	LogDate     string    `gorm:"type:date;not null;index" json:"log_date"`
	MealContext string    `json:"meal_context"`
	ItemName    string    `gorm:"not null;uniqueIndex:uidx_entry_dedupe" json:"item_name"`
	ServingQty  *float64  `json:"serving_qty"`
	ServingSize *string   `json:"serving_size"`
	Calories    *float64  `json:"calories"`
	ProteinG    *float64  `json:"protein_g"`
	CarbsG      *float64  `json:"carbs_g"`
	FatG        *float64  `json:"fat_g"`
	FiberG      *float64  `json:"fiber_g"`
	SugarG      *float64  `json:"sugar_g"`
	SodiumMg    *float64  `json:"sodium_mg"`
	WaterMl     *float64  `json:"water_ml"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"-"`
}
