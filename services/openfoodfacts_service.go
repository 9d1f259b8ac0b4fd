package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Iamjava/nutritionist/models"
	"github.com/Iamjava/nutritionist/store"
)

const defaultOpenFoodFactsURL = "https://world.openfoodfacts.org/cgi/search.pl"

type OpenFoodFactsService struct {
	baseURL string
	client  *http.Client
	store   *store.Store
}

func NewOpenFoodFactsService(s *store.Store) *OpenFoodFactsService {
	return &OpenFoodFactsService{
		baseURL: defaultOpenFoodFactsURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		store:   s,
	}
}

// NewOpenFoodFactsServiceWithURL points the client at a different endpoint.
// Used by tests.
func NewOpenFoodFactsServiceWithURL(s *store.Store, baseURL string) *OpenFoodFactsService {
	svc := NewOpenFoodFactsService(s)
	svc.baseURL = baseURL
	return svc
}

type productSearchResponse struct {
	Products []models.Product `json:"products"`
}

// Search returns products matching the free-text query, preferring the local
// name index over the live API. Remote hits are cached: each product is saved
// and indexed by its lowercased name.
func (s *OpenFoodFactsService) Search(ctx context.Context, query string) ([]models.Product, error) {
	local, err := s.SearchLocal(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 {
		return local, nil
	}
	return s.searchRemote(ctx, query)
}

// SearchLocal resolves the name index to cached products without touching the
// API. Index entries whose product is gone are skipped.
func (s *OpenFoodFactsService) SearchLocal(ctx context.Context, query string) ([]models.Product, error) {
	codes, err := s.store.SearchProductNames(ctx, query)
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(codes))
	for _, code := range codes {
		var p models.Product
		err := s.store.Fetch(ctx, models.ProductCollection, code, &p)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *OpenFoodFactsService) searchRemote(ctx context.Context, query string) ([]models.Product, error) {
	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("fields", "code,nutrition_grades,product_name,nutriments")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenFoodFacts request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenFoodFacts: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenFoodFacts response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openfoodfacts API error %d: %s", resp.StatusCode, string(body))
	}

	var sr productSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse OpenFoodFacts JSON: %w", err)
	}

	for i := range sr.Products {
		if err := s.SaveProduct(ctx, &sr.Products[i]); err != nil {
			return nil, err
		}
	}
	return sr.Products, nil
}

// SaveProduct caches the product and, when it has a display name, registers it
// in the name index. Nameless products are stored but never surface in search.
func (s *OpenFoodFactsService) SaveProduct(ctx context.Context, p *models.Product) error {
	if err := s.store.Save(ctx, p); err != nil {
		return err
	}
	if name := p.Name(); name != "" {
		return s.store.IndexProductName(ctx, name, p.Code)
	}
	return nil
}
