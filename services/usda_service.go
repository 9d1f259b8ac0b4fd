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

const defaultUSDABaseURL = "https://api.nal.usda.gov/fdc"

// USDA search results are immutable once written and expire after a week.
const usdaSearchTTL = 7 * 24 * time.Hour

type USDAService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	store   *store.Store
}

func NewUSDAService(s *store.Store, apiKey string) *USDAService {
	if apiKey == "" {
		apiKey = "DEMO_KEY"
	}
	return &USDAService{
		baseURL: defaultUSDABaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		store:   s,
	}
}

// NewUSDAServiceWithURL points the client at a different endpoint. Used by tests.
func NewUSDAServiceWithURL(s *store.Store, apiKey, baseURL string) *USDAService {
	svc := NewUSDAService(s, apiKey)
	svc.baseURL = baseURL
	return svc
}

type usdaSearchResponse struct {
	Foods []models.Food `json:"foods"`
}

// Search answers from the query cache when possible, otherwise queries the
// FoodData Central search endpoint and caches both the individual foods and
// the result list.
func (s *USDAService) Search(ctx context.Context, query string) ([]models.Food, error) {
	var cached models.FoodSearchResult
	err := s.store.Fetch(ctx, models.FoodSearchCollection, query, &cached)
	if err == nil {
		return cached.Foods, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	foods, err := s.searchRemote(ctx, query)
	if err != nil {
		return nil, err
	}
	for i := range foods {
		if err := s.store.Save(ctx, &foods[i]); err != nil {
			return nil, err
		}
	}
	result := models.FoodSearchResult{Query: query, Foods: foods}
	if err := s.store.SaveTTL(ctx, &result, usdaSearchTTL); err != nil {
		return nil, err
	}
	return foods, nil
}

func (s *USDAService) searchRemote(ctx context.Context, query string) ([]models.Food, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("dataType", "Foundation,SR Legacy")
	params.Set("pageSize", "30")
	params.Set("pageNumber", "1")
	params.Set("sortBy", "dataType.keyword")
	params.Set("sortOrder", "asc")
	params.Set("api_key", s.apiKey)

	u := s.baseURL + "/v1/foods/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create USDA request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call USDA food database: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read USDA response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usda API error %d: %s", resp.StatusCode, string(body))
	}

	var sr usdaSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse USDA JSON: %w", err)
	}
	return sr.Foods, nil
}
