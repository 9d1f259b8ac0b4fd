package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

const MealCollection = "meal"

// DateLayout is the civil-date form meals are keyed and compared by.
const DateLayout = "2006-01-02"

type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
	Snack     MealType = "Snack"
)

// ParseMealType maps a path segment to a meal type, defaulting to breakfast
// for anything unrecognized.
func ParseMealType(s string) MealType {
	switch s {
	case "lunch":
		return Lunch
	case "dinner":
		return Dinner
	case "snack":
		return Snack
	default:
		return Breakfast
	}
}

// MealContent is one line item of a meal: a frozen product snapshot plus the
// consumed quantity in grams of the per-100g base. ID is the removal handle.
type MealContent struct {
	Product  Product   `json:"product"`
	Quantity float64   `json:"quantity"`
	ID       uuid.UUID `json:"id"`
}

// Values is the content's actual contribution: the snapshot's per-100g record
// scaled by quantity. Recomputed at render time, never stored.
func (c MealContent) Values() NutrientValues {
	return c.Product.NutrientValues().Scale(c.Quantity * 0.01)
}

// Meal is one (user, date, type) slot. The id is generated once and never
// changes; handlers treat (user, date, type) as a soft uniqueness key.
type Meal struct {
	ID       uuid.UUID     `json:"id"`
	UserID   string        `json:"user_id"`
	Date     time.Time     `json:"date"`
	Type     MealType      `json:"meal_type"`
	Contents []MealContent `json:"contents"`
}

func NewMeal(userID string, date time.Time, mealType MealType) *Meal {
	return &Meal{
		ID:     uuid.New(),
		UserID: userID,
		Date:   date,
		Type:   mealType,
	}
}

func (m *Meal) Collection() string { return MealCollection }
func (m *Meal) Key() string        { return m.ID.String() }

func (m *Meal) DateString() string { return m.Date.Format(DateLayout) }

// IsSlot reports whether this meal occupies the given (date, type) slot.
func (m *Meal) IsSlot(date time.Time, mealType MealType) bool {
	return m.Type == mealType && m.DateString() == date.Format(DateLayout)
}

// Macros normalizes every content snapshot, scales it by its quantity and
// accumulates the meal total. Contents without nutrient data contribute zero.
func (m *Meal) Macros() NutrientValues {
	var total NutrientValues
	for _, c := range m.Contents {
		total = total.Add(c.Values())
	}
	return total
}

// DailyMealCombo groups one calendar day's slots for the meals overview.
type DailyMealCombo struct {
	Date      string
	UserID    string
	Breakfast *Meal
	Lunch     *Meal
	Dinner    *Meal
	Snack     *Meal
}

// GroupByDay buckets meals into per-day combos, newest day first.
func GroupByDay(meals []*Meal) []DailyMealCombo {
	byDate := make(map[string]*DailyMealCombo)
	var order []string
	for _, meal := range meals {
		day := meal.DateString()
		combo, ok := byDate[day]
		if !ok {
			combo = &DailyMealCombo{Date: day, UserID: meal.UserID}
			byDate[day] = combo
			order = append(order, day)
		}
		switch meal.Type {
		case Breakfast:
			combo.Breakfast = meal
		case Lunch:
			combo.Lunch = meal
		case Dinner:
			combo.Dinner = meal
		case Snack:
			combo.Snack = meal
		}
	}
	// ISO dates sort lexicographically; newest day first
	sort.Sort(sort.Reverse(sort.StringSlice(order)))
	combos := make([]DailyMealCombo, 0, len(order))
	for _, day := range order {
		combos = append(combos, *byDate[day])
	}
	return combos
}
