package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/helios/internal/models"
	"golang.org/x/time/rate"
)

// LocationIQBaseURL -- LocationIQ forward geocoding endpoint (US region).
const LocationIQBaseURL = "https://us1.locationiq.com/v1/search.php"

// LocationIQProvider implements geocoding using the LocationIQ API.
type LocationIQProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the LocationIQ API
	apiKey  string        // API access token
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// Common errors for LocationIQ provider.
var (
	ErrLocationIQEmptyResponse = fmt.Errorf("%w: locationiq API returned empty response", ErrAddressNotFound)
	ErrLocationIQEmptyAddress  = errors.New("locationiq provider got empty address")
	ErrLocationIQInvalidCoords = fmt.Errorf("%w: locationiq", ErrInvalidCoordinates)
	ErrLocationIQUnauthorized  = errors.New("locationiq API unauthorized (invalid API key)")
	ErrLocationIQRateLimited   = errors.New("locationiq API rate limit exceeded")
)

// NewLocationIQProvider creates a new LocationIQ geocoding provider.
func NewLocationIQProvider(apiKey string, rateLimit int, log *slog.Logger) *LocationIQProvider {
	const timeout = 10

	return NewLocationIQProviderWithClient(
		&http.Client{Timeout: timeout * time.Second},
		apiKey,
		rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		log,
	)
}

// NewLocationIQProviderWithClient allows injecting custom HTTP client.
func NewLocationIQProviderWithClient(
	client HTTPClient,
	apiKey string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *LocationIQProvider {
	return &LocationIQProvider{
		client:  client,
		baseURL: LocationIQBaseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: limiter,
	}
}

// Geocode converts address into geographic coordinates using LocationIQ.
func (lp *LocationIQProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	if address == "" {
		return nil, ErrLocationIQEmptyAddress
	}

	if err := lp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	lp.log.DebugContext(ctx, "Geocoding using LocationIQ", "address", address)

	reqURL, err := url.Parse(lp.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("key", lp.apiKey)
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := lp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusNotFound:
		return nil, ErrLocationIQEmptyResponse
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrLocationIQUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrLocationIQRateLimited
	default:
		body, _ := io.ReadAll(resp.Body)
		lp.log.ErrorContext(ctx, "LocationIQ API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("locationiq API returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []searchResult
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode locationiq response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrLocationIQEmptyResponse
	}

	lp.log.InfoContext(ctx, "LocationIQ found result", "address", address, "lat", results[0].Lat, "lon", results[0].Lon)

	return parseSearchResult(results[0], ErrLocationIQInvalidCoords)
}
