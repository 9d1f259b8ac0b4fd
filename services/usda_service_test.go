package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Iamjava/nutritionist/models"
)

const usdaSearchJSON = `{
	"foods": [
		{
			"fdcId": 1102702,
			"description": "Tomatoes, red, raw",
			"foodNutrients": [
				{"nutrientId": 1003, "nutrientName": "Protein", "value": 0.88, "unitName": "G"},
				{"nutrientId": 1008, "nutrientName": "Energy", "value": 18, "unitName": "KCAL"},
				{"nutrientId": 1093, "nutrientName": "Sodium, Na", "value": 5, "unitName": "MG"}
			]
		}
	]
}`

func TestUSDASearchCachesByQuery(t *testing.T) {
	st := newTestStore(t)
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/v1/foods/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "tomato" {
			t.Errorf("query = %q", got)
		}
		if got := r.URL.Query().Get("api_key"); got != "TEST_KEY" {
			t.Errorf("api_key = %q", got)
		}
		w.Write([]byte(usdaSearchJSON))
	}))
	defer srv.Close()

	svc := NewUSDAServiceWithURL(st, "TEST_KEY", srv.URL)
	ctx := context.Background()

	foods, err := svc.Search(ctx, "tomato")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(foods) != 1 || foods[0].FdcID != 1102702 {
		t.Fatalf("unexpected foods: %+v", foods)
	}

	again, err := svc.Search(ctx, "tomato")
	if err != nil {
		t.Fatalf("cached search: %v", err)
	}
	if calls != 1 {
		t.Errorf("API called %d times, want 1", calls)
	}
	if len(again) != 1 || again[0].Description != "Tomatoes, red, raw" {
		t.Errorf("cache returned %+v", again)
	}
}

func TestUSDASearchSavesIndividualFoods(t *testing.T) {
	st := newTestStore(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(usdaSearchJSON))
	}))
	defer srv.Close()

	svc := NewUSDAServiceWithURL(st, "TEST_KEY", srv.URL)
	ctx := context.Background()

	if _, err := svc.Search(ctx, "tomato"); err != nil {
		t.Fatalf("search: %v", err)
	}

	// foods become addressable by id, e.g. for adding to meals
	var food models.Food
	if err := st.Fetch(ctx, models.FoodCollection, "1102702", &food); err != nil {
		t.Fatalf("fetch cached food: %v", err)
	}
	if got := food.NutrientValues().Energy; got != 18 {
		t.Errorf("energy = %v, want 18", got)
	}
}

func TestUSDASearchPropagatesAPIErrors(t *testing.T) {
	st := newTestStore(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "key invalid", http.StatusForbidden)
	}))
	defer srv.Close()

	svc := NewUSDAServiceWithURL(st, "BAD", srv.URL)
	if _, err := svc.Search(context.Background(), "tomato"); err == nil {
		t.Errorf("expected error on non-200 response")
	}
}
