package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// OpenFoodFactsService queries the Open Food Facts v2 search API. The source
// is treated as unreliable: missing nutriment fields decode to zero here, once,
// at the boundary, and callers surface transport failures as ErrSourceUnavailable.
type OpenFoodFactsService struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewOpenFoodFactsService initializes the client with a bounded timeout. A
// non-response within the timeout is an error, never a hang.
func NewOpenFoodFactsService(baseURL string, timeout time.Duration) *OpenFoodFactsService {
	if baseURL == "" {
		baseURL = "https://world.openfoodfacts.org"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// OFF asks unauthenticated clients to stay around 10 search requests/min.
	limiter := rate.NewLimiter(rate.Limit(10.0/60.0), 5)

	return &OpenFoodFactsService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

// OFFProduct is one candidate record from a search.
type OFFProduct struct {
	ProductName string        `json:"product_name"`
	Brands      string        `json:"brands"`
	Categories  string        `json:"categories"`
	Nutriments  OFFNutriments `json:"nutriments"`
}

// OFFNutriments carries only the fields the resolver reads.
type OFFNutriments struct {
	EnergyKcalComputed float64 `json:"energy-kcal_value_computed"`
	EnergyKcal100g     float64 `json:"energy-kcal_100g"`
	Proteins100g       float64 `json:"proteins_100g"`
	Carbohydrates100g  float64 `json:"carbohydrates_100g"`
	Fat100g            float64 `json:"fat_100g"`
}

type offSearchResponse struct {
	Products []OFFProduct `json:"products"`
}

// Search returns up to pageSize candidate products for the search term.
func (s *OpenFoodFactsService) Search(ctx context.Context, term string, pageSize int) ([]OFFProduct, error) {
	if pageSize <= 0 {
		pageSize = 20
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u := fmt.Sprintf("%s/api/v2/search?search_terms=%s&fields=product_name,nutriments,brands,categories&page_size=%d",
		s.baseURL, url.QueryEscape(term), pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("User-Agent", "Calorie-App-backend/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Open Food Facts search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Open Food Facts response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open food facts API error %d: %s", resp.StatusCode, string(body))
	}

	var sr offSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse Open Food Facts JSON: %w", err)
	}

	log.Printf("[OFF] %d products for %q", len(sr.Products), term)
	return sr.Products, nil
}
