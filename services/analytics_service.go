package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sheltweezy/digestlibrary/models"

	"gorm.io/gorm"
)

// Metric names the aggregation layer understands. These are the wire
// names the front-end requests in ?metrics= and binds chart series to.
var metricNames = []string{
	"calories", "protein_g", "carbs_g", "fat_g",
	"fiber_g", "sugar_g", "sodium_mg", "water_ml",
}

// DefaultMetrics backs the trends/averages endpoints when the caller
// sends no metrics parameter.
var DefaultMetrics = []string{"calories", "protein_g", "carbs_g", "fat_g"}

const overviewWindowDays = 30
const overviewRecentLimit = 10

type AnalyticsService struct{ db *gorm.DB }

func NewAnalyticsService(db *gorm.DB) *AnalyticsService { return &AnalyticsService{db: db} }

// ---------- Daily summary ----------

type DailySummary struct {
	Date       string  `json:"date"`
	Calories   float64 `json:"calories"`
	ProteinG   float64 `json:"protein_g"`
	CarbsG     float64 `json:"carbs_g"`
	FatG       float64 `json:"fat_g"`
	FiberG     float64 `json:"fiber_g"`
	SugarG     float64 `json:"sugar_g"`
	SodiumMg   float64 `json:"sodium_mg"`
	WaterMl    float64 `json:"water_ml"`
	EntryCount int     `json:"entry_count"`
}

func (s *AnalyticsService) Summary(ctx context.Context, profileID uint, day time.Time) (*DailySummary, error) {
	entries, err := s.fetchRange(ctx, profileID, day, day)
	if err != nil {
		return nil, err
	}

	sum := func(metric string) float64 {
		var total float64
		for _, e := range entries {
			if v := metricValue(e, metric); v != nil {
				total += *v
			}
		}
		return total
	}

	return &DailySummary{
		Date:       day.Format(dateLayout),
		Calories:   sum("calories"),
		ProteinG:   sum("protein_g"),
		CarbsG:     sum("carbs_g"),
		FatG:       sum("fat_g"),
		FiberG:     sum("fiber_g"),
		SugarG:     sum("sugar_g"),
		SodiumMg:   sum("sodium_mg"),
		WaterMl:    sum("water_ml"),
		EntryCount: len(entries),
	}, nil
}

// ---------- Trend series ----------

type TrendSeries struct {
	Dates  []string              `json:"dates"`
	Series map[string][]*float64 `json:"series"`
}

// TrendSeries returns one value slot per calendar date in [start, end]
// for each requested metric. A day with no data for a metric carries
// nil — callers must treat gaps as missing, never zero.
func (s *AnalyticsService) TrendSeries(ctx context.Context, profileID uint, start, end time.Time, metrics []string) (*TrendSeries, error) {
	entries, err := s.fetchRange(ctx, profileID, start, end)
	if err != nil {
		return nil, err
	}

	requested := validMetrics(metrics)
	byDay := totalsByDay(entries)
	dates := datesBetween(start, end)

	series := make(map[string][]*float64, len(requested))
	for _, m := range requested {
		points := make([]*float64, len(dates))
		for i, d := range dates {
			day, ok := byDay[d]
			if !ok {
				continue
			}
			if v, has := day.sums[m]; has {
				value := v
				points[i] = &value
			}
		}
		series[m] = points
	}

	return &TrendSeries{Dates: dates, Series: series}, nil
}

// ---------- Rolling averages ----------

type RollingAverages struct {
	Averages   map[string]*float64 `json:"averages"`
	DaysLogged int                 `json:"days_logged"`
	TotalDays  int                 `json:"total_days"`
}

// RollingAverages means each metric's daily totals over the days that
// actually have data for it; unlogged days never dilute the
// denominator. TotalDays is the inclusive calendar length of the
// range regardless of logging.
func (s *AnalyticsService) RollingAverages(ctx context.Context, profileID uint, start, end time.Time, metrics []string) (*RollingAverages, error) {
	entries, err := s.fetchRange(ctx, profileID, start, end)
	if err != nil {
		return nil, err
	}
	byDay := totalsByDay(entries)

	return &RollingAverages{
		Averages:   averagesOverDays(byDay, validMetrics(metrics)),
		DaysLogged: len(byDay),
		TotalDays:  inclusiveDayCount(start, end),
	}, nil
}

// ---------- Favorites ----------

type FavoriteFood struct {
	Food        string   `json:"food"`
	Count       int      `json:"count"`
	AvgCalories *float64 `json:"avg_calories"`
	AvgProteinG *float64 `json:"avg_protein_g"`
}

func (s *AnalyticsService) Favorites(ctx context.Context, profileID uint, start, end time.Time, limit int) ([]FavoriteFood, error) {
	if limit <= 0 {
		return nil, ErrInvalidArgument
	}
	entries, err := s.fetchRange(ctx, profileID, start, end)
	if err != nil {
		return nil, err
	}
	return favoriteFoods(entries, limit), nil
}

// ---------- Meal patterns ----------

type MealPattern struct {
	Meal        string   `json:"meal"`
	EntryCount  int      `json:"entry_count"`
	AvgCalories *float64 `json:"avg_calories"`
	TopFoods    []string `json:"top_foods"`
}

// MealPatterns groups entries by meal context in fixed order
// (breakfast, lunch, dinner, late_night, other); empty groups are
// omitted.
func (s *AnalyticsService) MealPatterns(ctx context.Context, profileID uint, start, end time.Time) ([]MealPattern, error) {
	entries, err := s.fetchRange(ctx, profileID, start, end)
	if err != nil {
		return nil, err
	}
	return mealPatterns(entries), nil
}

// ---------- Overview ----------

type MetricTrend struct {
	Direction string  `json:"direction"`
	Pct       float64 `json:"pct"`
}

type DayValue struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type OverviewPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Overview struct {
	Period           OverviewPeriod         `json:"period"`
	Averages         map[string]*float64    `json:"averages"`
	Trends           map[string]MetricTrend `json:"trends"`
	Goals            *models.Goal           `json:"goals"`
	DaysLogged       int                    `json:"days_logged"`
	TotalDays        int                    `json:"total_days"`
	Streak           int                    `json:"streak"`
	MostLoggedFood   *string                `json:"most_logged_food"`
	HighestSodiumDay *DayValue              `json:"highest_sodium_day"`
	LowestCalorieDay *DayValue              `json:"lowest_calorie_day"`
	RecentEntries    []models.Entry         `json:"recent_entries"`
}

// Overview is the 30-day "state of you" summary: averages over logged
// days, the same figures for the preceding 30-day window for trend
// comparison, the logging streak ending at asOf, goals (nil when
// unconfigured), deterministic highlight days, and the latest entries.
func (s *AnalyticsService) Overview(ctx context.Context, profileID uint, asOf time.Time) (*Overview, error) {
	start := asOf.AddDate(0, 0, -(overviewWindowDays - 1))
	prevStart := asOf.AddDate(0, 0, -(2*overviewWindowDays - 1))

	window, err := s.fetchRange(ctx, profileID, prevStart, asOf)
	if err != nil {
		return nil, err
	}

	startKey := start.Format(dateLayout)
	var current, previous []models.Entry
	for _, e := range window {
		if e.LogDate >= startKey {
			current = append(current, e)
		} else {
			previous = append(previous, e)
		}
	}

	currentByDay := totalsByDay(current)
	averages := averagesOverDays(currentByDay, metricNames)
	prevAverages := averagesOverDays(totalsByDay(previous), metricNames)

	trends := make(map[string]MetricTrend, len(metricNames))
	for _, m := range metricNames {
		trends[m] = metricTrend(averages[m], prevAverages[m])
	}

	goals, err := s.goalRecord(ctx, profileID)
	if err != nil {
		return nil, err
	}

	logged, err := s.loggedDates(ctx, profileID)
	if err != nil {
		return nil, err
	}

	var recent []models.Entry
	err = s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("logged_at DESC").
		Limit(overviewRecentLimit).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}

	out := &Overview{
		Period:           OverviewPeriod{Start: startKey, End: asOf.Format(dateLayout)},
		Averages:         averages,
		Trends:           trends,
		Goals:            goals,
		DaysLogged:       len(currentByDay),
		TotalDays:        overviewWindowDays,
		Streak:           loggingStreak(logged, asOf),
		HighestSodiumDay: extremeDay(currentByDay, "sodium_mg", true),
		LowestCalorieDay: extremeDay(currentByDay, "calories", false),
		RecentEntries:    recent,
	}
	if favorites := favoriteFoods(current, 1); len(favorites) > 0 {
		out.MostLoggedFood = &favorites[0].Food
	}
	return out, nil
}

// ---------- internals ----------

// fetchRange loads a profile's entries for an inclusive calendar-date
// range, oldest first. Every aggregation recomputes from this raw
// entry set; nothing is cached.
func (s *AnalyticsService) fetchRange(ctx context.Context, profileID uint, start, end time.Time) ([]models.Entry, error) {
	if end.Before(start) {
		return nil, ErrInvalidArgument
	}
	if err := profileExists(s.db.WithContext(ctx), profileID); err != nil {
		return nil, err
	}

	var entries []models.Entry
	err := s.db.WithContext(ctx).
		Where("profile_id = ? AND log_date >= ? AND log_date <= ?",
			profileID, start.Format(dateLayout), end.Format(dateLayout)).
		Order("logged_at ASC").
		Find(&entries).Error
	return entries, err
}

func (s *AnalyticsService) goalRecord(ctx context.Context, profileID uint) (*models.Goal, error) {
	var g models.Goal
	err := s.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *AnalyticsService) loggedDates(ctx context.Context, profileID uint) (map[string]bool, error) {
	var dates []string
	err := s.db.WithContext(ctx).Model(&models.Entry{}).
		Distinct("log_date").
		Where("profile_id = ?", profileID).
		Pluck("log_date", &dates).Error
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set, nil
}

func metricValue(e models.Entry, metric string) *float64 {
	switch metric {
	case "calories":
		return e.Calories
	case "protein_g":
		return e.ProteinG
	case "carbs_g":
		return e.CarbsG
	case "fat_g":
		return e.FatG
	case "fiber_g":
		return e.FiberG
	case "sugar_g":
		return e.SugarG
	case "sodium_mg":
		return e.SodiumMg
	case "water_ml":
		return e.WaterMl
	default:
		return nil
	}
}

// validMetrics keeps the caller's order, dropping unknown names and
// duplicates.
func validMetrics(requested []string) []string {
	known := make(map[string]bool, len(metricNames))
	for _, m := range metricNames {
		known[m] = true
	}
	var out []string
	seen := map[string]bool{}
	for _, m := range requested {
		m = strings.TrimSpace(m)
		if known[m] && !seen[m] {
			out = append(out, m)
			seen[m] = true
		}
	}
	return out
}

// dayTotals holds one calendar day's per-metric sums. A metric absent
// from sums had no data that day, which is not the same as zero.
type dayTotals struct {
	sums  map[string]float64
	count int
}

func totalsByDay(entries []models.Entry) map[string]*dayTotals {
	byDay := map[string]*dayTotals{}
	for _, e := range entries {
		day, ok := byDay[e.LogDate]
		if !ok {
			day = &dayTotals{sums: map[string]float64{}}
			byDay[e.LogDate] = day
		}
		day.count++
		for _, m := range metricNames {
			if v := metricValue(e, m); v != nil {
				day.sums[m] += *v
			}
		}
	}
	return byDay
}

// averagesOverDays means each metric over the days that have data for
// it; a metric with no data anywhere in the range averages to nil.
func averagesOverDays(byDay map[string]*dayTotals, metrics []string) map[string]*float64 {
	out := make(map[string]*float64, len(metrics))
	for _, m := range metrics {
		var sum float64
		var n int
		for _, day := range byDay {
			if v, has := day.sums[m]; has {
				sum += v
				n++
			}
		}
		if n == 0 {
			out[m] = nil
			continue
		}
		avg := round1(sum / float64(n))
		out[m] = &avg
	}
	return out
}

func metricTrend(current, previous *float64) MetricTrend {
	if current == nil || previous == nil || *previous <= 0 {
		return MetricTrend{Direction: "flat", Pct: 0}
	}
	pct := round1(((*current - *previous) / *previous) * 100)
	switch {
	case pct > 0:
		return MetricTrend{Direction: "up", Pct: pct}
	case pct < 0:
		return MetricTrend{Direction: "down", Pct: -pct}
	default:
		return MetricTrend{Direction: "flat", Pct: 0}
	}
}

func favoriteFoods(entries []models.Entry, limit int) []FavoriteFood {
	type group struct {
		count   int
		calSum  float64
		calN    int
		protSum float64
		protN   int
	}
	groups := map[string]*group{}
	for _, e := range entries {
		name := strings.ToLower(strings.TrimSpace(e.ItemName))
		g, ok := groups[name]
		if !ok {
			g = &group{}
			groups[name] = g
		}
		g.count++
		if e.Calories != nil {
			g.calSum += *e.Calories
			g.calN++
		}
		if e.ProteinG != nil {
			g.protSum += *e.ProteinG
			g.protN++
		}
	}

	out := make([]FavoriteFood, 0, len(groups))
	for name, g := range groups {
		f := FavoriteFood{Food: name, Count: g.count}
		if g.calN > 0 {
			avg := round1(g.calSum / float64(g.calN))
			f.AvgCalories = &avg
		}
		if g.protN > 0 {
			avg := round1(g.protSum / float64(g.protN))
			f.AvgProteinG = &avg
		}
		out = append(out, f)
	}

	// Count descending, name ascending on ties.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Food < out[j].Food
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func mealPatterns(entries []models.Entry) []MealPattern {
	byMeal := map[string][]models.Entry{}
	for _, e := range entries {
		meal := e.MealContext
		if !isKnownMeal(meal) {
			meal = models.MealOther
		}
		byMeal[meal] = append(byMeal[meal], e)
	}

	var out []MealPattern
	for _, meal := range models.MealOrder {
		group := byMeal[meal]
		if len(group) == 0 {
			continue
		}
		p := MealPattern{Meal: meal, EntryCount: len(group), TopFoods: []string{}}

		var calSum float64
		var calN int
		for _, e := range group {
			if e.Calories != nil {
				calSum += *e.Calories
				calN++
			}
		}
		if calN > 0 {
			avg := round1(calSum / float64(calN))
			p.AvgCalories = &avg
		}

		for _, f := range favoriteFoods(group, 3) {
			p.TopFoods = append(p.TopFoods, f.Food)
		}
		out = append(out, p)
	}
	return out
}

func isKnownMeal(meal string) bool {
	for _, m := range models.MealOrder {
		if meal == m {
			return true
		}
	}
	return false
}

// extremeDay picks the day with the highest (or lowest) total for a
// metric among days that have data for it; ties resolve to the
// earliest date so the highlight is deterministic.
func extremeDay(byDay map[string]*dayTotals, metric string, highest bool) *DayValue {
	var best *DayValue
	dates := make([]string, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, d := range dates {
		v, has := byDay[d].sums[metric]
		if !has {
			continue
		}
		if best == nil || (highest && v > best.Value) || (!highest && v < best.Value) {
			best = &DayValue{Date: d, Value: v}
		}
	}
	return best
}

// loggingStreak counts consecutive logged days ending at asOf; a gap
// at asOf itself means the streak is 0.
func loggingStreak(logged map[string]bool, asOf time.Time) int {
	streak := 0
	for d := asOf; logged[d.Format(dateLayout)]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

func datesBetween(start, end time.Time) []string {
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates
}

func inclusiveDayCount(start, end time.Time) int {
	return len(datesBetween(start, end))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
