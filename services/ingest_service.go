package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sheltweezy/digestlibrary/models"

	"gorm.io/gorm"
)

// SnapCalorie export columns. Headers carry units in parentheses and
// blank cells mean "not measured", never zero.
const (
	colDate     = "Date"
	colTime     = "Time"
	colFood     = "Food"
	colQty      = "Quantity"
	colUnit     = "Unit"
	colCalories = "Calories (kcal)"
	colProtein  = "Protein (g)"
	colCarbs    = "Carbs (g)"
	colFat      = "Fat (g)"
	colFiber    = "Fiber (g)"
	colSugar    = "Sugar (g)"
	colSodium   = "Sodium (mg)"
)

const sourceSnapCalorie = "snapcalorie"

type IngestResult struct {
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Dates    []string `json:"dates"`
	Errors   []string `json:"errors"`
}

type IngestService struct {
	db      *gorm.DB
	entries *EntryService
}

func NewIngestService(db *gorm.DB, entries *EntryService) *IngestService {
	return &IngestService{db: db, entries: entries}
}

// IngestSnapCalorie parses a SnapCalorie CSV export and appends its
// rows as entries for the profile. One bad row never aborts the
// batch: it is counted as skipped and recorded as a warning. A row
// whose dedupe key already exists is counted as skipped silently, so
// re-uploading the same file is idempotent.
func (s *IngestService) IngestSnapCalorie(profileID uint, r io.Reader) (*IngestResult, error) {
	if err := profileExists(s.db, profileID); err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read CSV header", ErrInvalidArgument)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colDate, colTime, colFood} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidArgument, required)
		}
	}

	result := &IngestResult{Errors: []string{}}
	touched := map[string]bool{}

	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: malformed row — %v", rowNum, err))
			continue
		}

		field := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		itemName := field(colFood)
		if itemName == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: blank food name — skipped", rowNum))
			continue
		}

		loggedAt, err := parseLoggedAt(field(colDate), field(colTime))
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d (%q): %v", rowNum, itemName, err))
			continue
		}

		entry := models.Entry{
			LoggedAt:    loggedAt,
			MealContext: inferMealContext(loggedAt),
			ItemName:    itemName,
			ServingQty:  parseOptionalFloat(field(colQty)),
			ServingSize: optionalString(field(colUnit)),
			Calories:    parseOptionalFloat(field(colCalories)),
			ProteinG:    parseOptionalFloat(field(colProtein)),
			CarbsG:      parseOptionalFloat(field(colCarbs)),
			FatG:        parseOptionalFloat(field(colFat)),
			FiberG:      parseOptionalFloat(field(colFiber)),
			SugarG:      parseOptionalFloat(field(colSugar)),
			SodiumMg:    parseOptionalFloat(field(colSodium)),
			Source:      sourceSnapCalorie,
			ProfileID:   profileID,
		}

		inserted, err := s.entries.insert(&entry)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d (%q): %v", rowNum, itemName, err))
			continue
		}
		if !inserted {
			// Duplicate of an existing entry: counted, not a warning.
			result.Skipped++
			continue
		}
		result.Inserted++
		touched[entry.LogDate] = true
	}

	result.Dates = make([]string, 0, len(touched))
	for d := range touched {
		result.Dates = append(result.Dates, d)
	}
	sort.Strings(result.Dates)

	return result, nil
}

func parseLoggedAt(dateStr, timeStr string) (time.Time, error) {
	combined := dateStr + " " + timeStr
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, combined, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date/time %q", combined)
}

// parseOptionalFloat treats blanks and unparseable values as absent,
// never zero.
func parseOptionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// inferMealContext maps the logged hour to a meal slot. SnapCalorie
// exports carry no meal column.
func inferMealContext(loggedAt time.Time) string {
	switch hour := loggedAt.Hour(); {
	case hour >= 5 && hour < 10:
		return models.MealBreakfast
	case hour >= 10 && hour < 15:
		return models.MealLunch
	case hour >= 15 && hour < 21:
		return models.MealDinner
	case hour >= 21:
		return models.MealLateNight
	default:
		return models.MealOther
	}
}
