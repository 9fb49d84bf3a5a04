package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/helios/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider resolves dwelling addresses with the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the part of *maps.Client the provider calls.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// Errors of the Google provider.
var (
	ErrGoogleEmptyResponse = fmt.Errorf("%w: google maps API returned no results", ErrAddressNotFound)
	ErrGoogleEmptyAddress  = errors.New("google provider got empty address")
	ErrGoogleInvalidCoords = fmt.Errorf("%w: google", ErrInvalidCoordinates)
)

// NewGoogleProvider wraps an already configured Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode returns the location of address. Exact matches win over partial ones; when
// Google only has partial matches the first of them is used and a warning is logged.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	if address == "" {
		return nil, ErrGoogleEmptyAddress
	}

	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	results, err := gp.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrGoogleEmptyResponse
	}

	best := pickResult(results)
	if best.PartialMatch {
		gp.log.WarnContext(ctx, "Google returned only partial matches",
			"address", address, "matched", best.FormattedAddress)
	}

	loc := best.Geometry.Location
	gp.log.InfoContext(ctx, "Google found result",
		"address", address, "lat", loc.Lat, "lng", loc.Lng, "location_type", best.Geometry.LocationType)

	return checkCoordinates(loc.Lat, loc.Lng, ErrGoogleInvalidCoords)
}

// pickResult returns the first exact match, or the first result if every match is partial.
func pickResult(results []maps.GeocodingResult) maps.GeocodingResult {
	for _, r := range results {
		if !r.PartialMatch {
			return r
		}
	}
	return results[0]
}
