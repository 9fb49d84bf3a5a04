package geocoding_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/helios/internal/geocoding"
	"github.com/UnknownOlympus/helios/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func googleResult(lat, lng float64, partial bool) maps.GeocodingResult {
	return maps.GeocodingResult{
		FormattedAddress: "301 King St W, Toronto, ON M5V 2T6, Canada",
		Geometry: maps.AddressGeometry{
			Location:     maps.LatLng{Lat: lat, Lng: lng},
			LocationType: "ROOFTOP",
		},
		PartialMatch: partial,
	}
}

func TestGoogleGeocode(t *testing.T) {
	mockClient := mocks.NewGoogleAPIClient(t)
	provider := geocoding.NewGoogleProvider(mockClient, slog.Default())
	ctx := t.Context()
	address := "301 King St W, Toronto, M5V 2T6, Canada"
	req := &maps.GeocodingRequest{Address: address}

	t.Run("empty address", func(t *testing.T) {
		coords, err := provider.Geocode(ctx, "")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrGoogleEmptyAddress)
	})

	t.Run("api returns error", func(t *testing.T) {
		mockClient.On("Geocode", ctx, req).Return(nil, assert.AnError).Once()

		_, err := provider.Geocode(ctx, address)

		require.ErrorIs(t, err, assert.AnError)
		require.NotErrorIs(t, err, geocoding.ErrAddressNotFound)
	})

	t.Run("api return empty response", func(t *testing.T) {
		mockClient.On("Geocode", ctx, req).Return(nil, nil).Once()

		coords, err := provider.Geocode(ctx, address)

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrGoogleEmptyResponse)
		require.ErrorIs(t, err, geocoding.ErrAddressNotFound)
	})

	t.Run("successfull geocoding", func(t *testing.T) {
		mockClient.On("Geocode", ctx, req).
			Return([]maps.GeocodingResult{googleResult(43.6465, -79.3892, false)}, nil).Once()

		coords, err := provider.Geocode(ctx, address)

		require.NoError(t, err)
		require.InEpsilon(t, 43.6465, coords.Latitude, 0.0001)
		require.InEpsilon(t, -79.3892, coords.Longitude, 0.0001)
	})

	t.Run("exact match preferred over partial", func(t *testing.T) {
		mockClient.On("Geocode", ctx, req).Return([]maps.GeocodingResult{
			googleResult(43.7, -79.4, true),
			googleResult(43.6465, -79.3892, false),
		}, nil).Once()

		coords, err := provider.Geocode(ctx, address)

		require.NoError(t, err)
		require.InEpsilon(t, 43.6465, coords.Latitude, 0.0001)
	})

	t.Run("only partial matches", func(t *testing.T) {
		mockClient.On("Geocode", ctx, req).Return([]maps.GeocodingResult{
			googleResult(43.7, -79.4, true),
			googleResult(43.8, -79.5, true),
		}, nil).Once()

		coords, err := provider.Geocode(ctx, address)

		require.NoError(t, err)
		require.InEpsilon(t, 43.7, coords.Latitude, 0.0001)
	})

	t.Run("coordinates out of range", func(t *testing.T) {
		mockClient.On("Geocode", ctx, req).
			Return([]maps.GeocodingResult{googleResult(123, -79.4, false)}, nil).Once()

		coords, err := provider.Geocode(ctx, address)

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrGoogleInvalidCoords)
		require.ErrorIs(t, err, geocoding.ErrInvalidCoordinates)
	})
}
