package buildings_test

import (
	"context"
	"math"
	"testing"

	"github.com/UnknownOlympus/helios/internal/buildings"
	"github.com/UnknownOlympus/helios/internal/geo"
	"github.com/UnknownOlympus/helios/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var center = models.Coordinates{Latitude: 43.6532, Longitude: -79.3832}

func recordAt(bearing, distance, height float64) buildings.Record {
	pos := geo.Destination(center, bearing, distance)
	return buildings.Record{
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		MaxHeight: height,
		HeightMSL: height + 76,
		Area:      512.34,
	}
}

func TestDataset_Nearby(t *testing.T) {
	t.Parallel()

	dataset := buildings.NewDataset([]buildings.Record{
		recordAt(0, 80, 30),
		recordAt(90, 20, 12),
		recordAt(180, 99, 50),
		recordAt(270, 150, 90),
		recordAt(45, 5000, 200),
		{Latitude: math.NaN(), Longitude: -79.38},
	})

	require.Equal(t, 5, dataset.Len())

	list, err := dataset.Nearby(t.Context(), center, 100)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.InDelta(t, 20.0, list[0].Distance, 0.1)
	assert.InDelta(t, 80.0, list[1].Distance, 0.1)
	assert.InDelta(t, 99.0, list[2].Distance, 0.1)
	assert.InDelta(t, 12.0, list[0].HeightMax, 1e-9)
	assert.InDelta(t, 88.0, list[0].Height, 1e-9)
	assert.InDelta(t, 512.3, list[0].Area, 1e-9)
}

func TestDataset_NearbyEmpty(t *testing.T) {
	t.Parallel()

	dataset := buildings.NewDataset(nil)
	list, err := dataset.Nearby(t.Context(), center, 100)

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDataset_NearbyErrors(t *testing.T) {
	t.Parallel()

	dataset := buildings.NewDataset([]buildings.Record{recordAt(0, 10, 10)})

	t.Run("invalid radius", func(t *testing.T) {
		_, err := dataset.Nearby(t.Context(), center, 0)
		require.ErrorIs(t, err, buildings.ErrInvalidRadius)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := dataset.Nearby(ctx, center, 100)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestFilterByDirection(t *testing.T) {
	t.Parallel()

	dataset := buildings.NewDataset([]buildings.Record{
		recordAt(10, 30, 10),
		recordAt(60, 30, 10),
		recordAt(135, 30, 10),
		recordAt(190, 30, 10),
		recordAt(260, 30, 10),
	})
	list, err := dataset.Nearby(t.Context(), center, 100)
	require.NoError(t, err)

	south := buildings.FilterByDirection(center, models.South, list)
	north := buildings.FilterByDirection(center, models.North, list)
	east := buildings.FilterByDirection(center, models.East, list)

	assert.Len(t, south, 3)
	assert.Len(t, north, 2)
	assert.Len(t, east, 3)
	assert.Empty(t, buildings.FilterByDirection(center, models.West, nil))
}
