package geocoding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/helios/internal/models"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input,
// and returns the corresponding coordinates and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Errors shared by all providers. Provider specific errors wrap one of these.
var (
	ErrAddressNotFound    = errors.New("address not found")
	ErrInvalidCoordinates = errors.New("provider returned invalid coordinates")
)

// searchResult is the response item shared by Nominatim-compatible APIs.
type searchResult struct {
	Lat string `json:"lat"` // Latitude as string
	Lon string `json:"lon"` // Longitude as string
}

// parseSearchResult converts string coordinates into models.Coordinates,
// rejecting values outside the WGS84 range.
func parseSearchResult(res searchResult, invalid error) (*models.Coordinates, error) {
	lat, err := strconv.ParseFloat(res.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", invalid, res.Lat)
	}
	lon, err := strconv.ParseFloat(res.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", invalid, res.Lon)
	}

	return checkCoordinates(lat, lon, invalid)
}

// checkCoordinates returns lat/lon as Coordinates when both are finite and inside the WGS84 range.
func checkCoordinates(lat, lon float64, invalid error) (*models.Coordinates, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("%w: invalid latitude: %v", invalid, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: invalid longitude: %v", invalid, lon)
	}

	return &models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
