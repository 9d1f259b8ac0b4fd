package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const nutellaSearchJSON = `{
	"products": [
		{
			"code": "3017620422003",
			"product_name": "Nutella",
			"nutrition_grades": "e",
			"nutriments": {
				"carbohydrates_100g": "57.5",
				"sugars_100g": 56.3,
				"proteins_100g": 6.3,
				"fat_100g": "30.9",
				"energy-kcal_100g": 539
			}
		},
		{
			"code": "0000000000000",
			"nutriments": {"energy-kcal_100g": 100}
		}
	]
}`

func TestSearchFetchesAndCachesProducts(t *testing.T) {
	st := newTestStore(t)
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("search_terms"); got != "nutella" {
			t.Errorf("search_terms = %q", got)
		}
		w.Write([]byte(nutellaSearchJSON))
	}))
	defer srv.Close()

	svc := NewOpenFoodFactsServiceWithURL(st, srv.URL)
	ctx := context.Background()

	products, err := svc.Search(ctx, "nutella")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if products[0].NutrientValues().Energy != 539 {
		t.Errorf("energy = %v, want 539", products[0].NutrientValues().Energy)
	}

	// second search is answered from the local name index
	cached, err := svc.Search(ctx, "NUTELLA")
	if err != nil {
		t.Fatalf("cached search: %v", err)
	}
	if calls != 1 {
		t.Errorf("API called %d times, want 1", calls)
	}
	if len(cached) != 1 || cached[0].Code != "3017620422003" {
		t.Errorf("local search results: %+v", cached)
	}
}

func TestSearchLocalSkipsNamelessProducts(t *testing.T) {
	st := newTestStore(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(nutellaSearchJSON))
	}))
	defer srv.Close()

	svc := NewOpenFoodFactsServiceWithURL(st, srv.URL)
	ctx := context.Background()

	if _, err := svc.Search(ctx, "nutella"); err != nil {
		t.Fatalf("search: %v", err)
	}
	// the nameless product was stored but never indexed
	local, err := svc.SearchLocal(ctx, "000000")
	if err != nil {
		t.Fatalf("local search: %v", err)
	}
	if len(local) != 0 {
		t.Errorf("nameless product should not be searchable: %+v", local)
	}
}

func TestSearchPropagatesAPIErrors(t *testing.T) {
	st := newTestStore(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewOpenFoodFactsServiceWithURL(st, srv.URL)
	if _, err := svc.Search(context.Background(), "anything"); err == nil {
		t.Errorf("expected error on non-200 response")
	}
}
