package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Iamjava/nutritionist/models"
	"github.com/Iamjava/nutritionist/store"
)

// mealSetKey is the owner index: "meals:{userID}" holds the user's meal ids.
func mealSetKey(userID string) string { return "meals:" + userID }

type MealService struct {
	store *store.Store
}

func NewMealService(s *store.Store) *MealService {
	return &MealService{store: s}
}

// save writes the meal and registers it in the owner's meal set. The two
// writes are not atomic; readers tolerate set members without a record.
func (s *MealService) save(ctx context.Context, meal *models.Meal) error {
	if err := s.store.AddToSet(ctx, mealSetKey(meal.UserID), meal.ID.String()); err != nil {
		return err
	}
	return s.store.Save(ctx, meal)
}

func (s *MealService) Get(ctx context.Context, id string) (*models.Meal, error) {
	var meal models.Meal
	if err := s.store.Fetch(ctx, models.MealCollection, id, &meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

// MealsForUser resolves the owner's meal set. Dangling ids (deleted or
// corrupt records) are skipped.
func (s *MealService) MealsForUser(ctx context.Context, userID string) ([]*models.Meal, error) {
	ids, err := s.store.SetMembers(ctx, mealSetKey(userID))
	if err != nil {
		return nil, err
	}
	meals := make([]*models.Meal, 0, len(ids))
	for _, id := range ids {
		meal, err := s.Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		meals = append(meals, meal)
	}
	return meals, nil
}

// FindOrCreate treats (user, date, type) as a soft uniqueness key: an
// existing meal in that slot is returned, otherwise a new one is created.
// The id of a created meal never changes afterwards.
func (s *MealService) FindOrCreate(ctx context.Context, userID string, date time.Time, mealType models.MealType) (*models.Meal, error) {
	meals, err := s.MealsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, meal := range meals {
		if meal.IsSlot(date, mealType) {
			return meal, nil
		}
	}
	meal := models.NewMeal(userID, date, mealType)
	if err := s.save(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

// AddContent embeds a snapshot of the product into the meal. The snapshot is
// a copy: later changes to the stored product do not affect logged meals.
// Codes are resolved against the product cache first, then the USDA cache.
func (s *MealService) AddContent(ctx context.Context, mealID, productCode string, grams float64) (*models.Meal, error) {
	meal, err := s.Get(ctx, mealID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.lookupProduct(ctx, productCode)
	if err != nil {
		return nil, err
	}

	meal.Contents = append(meal.Contents, models.MealContent{
		Product:  *snapshot,
		Quantity: grams,
		ID:       uuid.New(),
	})
	if err := s.save(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

func (s *MealService) lookupProduct(ctx context.Context, code string) (*models.Product, error) {
	var product models.Product
	err := s.store.Fetch(ctx, models.ProductCollection, code, &product)
	if err == nil {
		return &product, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	var food models.Food
	err = s.store.Fetch(ctx, models.FoodCollection, code, &food)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("unknown product code %q: %w", code, store.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	p := food.ToProduct()
	return &p, nil
}

// RemoveContent drops the entry with the given content id and saves the meal.
func (s *MealService) RemoveContent(ctx context.Context, mealID string, contentID uuid.UUID) (*models.Meal, error) {
	meal, err := s.Get(ctx, mealID)
	if err != nil {
		return nil, err
	}
	kept := meal.Contents[:0]
	for _, c := range meal.Contents {
		if c.ID != contentID {
			kept = append(kept, c)
		}
	}
	meal.Contents = kept
	if err := s.save(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}
