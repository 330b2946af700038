package kernel_test

import (
	"strings"
	"testing"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name      string
		lat, lon  float64
		zone      string
		wantErrIs error
	}{
		{name: "city centre", lat: 52.52, lon: 13.405, zone: "mitte"},
		{name: "bounds inclusive", lat: -90, lon: 180, zone: ""},
		{name: "latitude too high", lat: 90.01, lon: 0, wantErrIs: errs.ErrValueIsOutOfRange},
		{name: "longitude too low", lat: 0, lon: -180.5, wantErrIs: errs.ErrValueIsOutOfRange},
		{name: "zone too long", lat: 0, lon: 0, zone: strings.Repeat("z", kernel.ZoneMaxLength+1), wantErrIs: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.lat, tt.lon, tt.zone)

			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				assert.Error(t, loc.Validate())
				return
			}
			require.NoError(t, err)
			require.NoError(t, loc.Validate())
			assert.InDelta(t, tt.lat, loc.Latitude(), 1e-9)
			assert.InDelta(t, tt.lon, loc.Longitude(), 1e-9)
			assert.Equal(t, tt.zone, loc.Zone())
		})
	}

	t.Run("should report every invalid field", func(t *testing.T) {
		_, err := kernel.NewLocation(100, 200, "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("should trim zone label", func(t *testing.T) {
		loc, err := kernel.NewLocation(1, 2, "  depot-7 ")

		require.NoError(t, err)
		assert.Equal(t, "depot-7", loc.Zone())
	})
}

func TestLocation_IsEqual(t *testing.T) {
	a, _ := kernel.NewLocation(10, 20, "north")
	b, _ := kernel.NewLocation(10, 20, "north")
	c, _ := kernel.NewLocation(10, 20, "south")

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)

	_, err = a.IsEqual(kernel.Location{})
	require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
}
