package readmodel_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/application/readmodel"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(kernel.NewUUID(), "PKG-7", kernel.NewUUID(), parcel.Details{
		PickupAddress: "a", DeliveryAddress: "b", WeightKg: 1.5,
	}, time.Unix(1_700_000_000, 0).UTC())
	require.NoError(t, err)
	return p
}

func TestNewParcelView(t *testing.T) {
	p := newParcel(t)
	courierID := kernel.NewUUID()
	require.NoError(t, p.Take(courierID, p.CreatedAt().Add(time.Minute)))

	v := readmodel.NewParcelView(p)

	assert.Equal(t, p.ID().String(), v.ID)
	assert.Equal(t, "ASSIGNED", v.Status)
	require.NotNil(t, v.CourierID)
	assert.Equal(t, courierID.String(), *v.CourierID)
	assert.Nil(t, v.CurrentLocation)
	assert.NotNil(t, v.AssignedAt)
}

func TestInvalidationKeys(t *testing.T) {
	t.Run("should include holder of the parcel", func(t *testing.T) {
		p := newParcel(t)
		courierID := kernel.NewUUID()
		require.NoError(t, p.Take(courierID, time.Now()))

		keys := readmodel.InvalidationKeys(p, nil)

		assert.Contains(t, keys, readmodel.AvailableParcelsKey())
		assert.Contains(t, keys, readmodel.CustomerParcelsKey(p.CustomerID()))
		assert.Contains(t, keys, readmodel.ParcelHistoryKey(p.ID()))
		assert.Contains(t, keys, readmodel.CourierActiveParcelsKey(courierID))
	})

	t.Run("should include courier that dropped the parcel", func(t *testing.T) {
		p := newParcel(t)
		courierID := kernel.NewUUID()
		require.NoError(t, p.Take(courierID, time.Now()))
		require.NoError(t, p.Drop(courierID, time.Now()))

		keys := readmodel.InvalidationKeys(p, &courierID)

		assert.Contains(t, keys, readmodel.CourierActiveParcelsKey(courierID))
	})
}
