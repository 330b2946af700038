package history_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	now := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

	t.Run("should create unsequenced entry", func(t *testing.T) {
		parcelID := kernel.NewUUID()
		courierID := kernel.NewUUID()

		e, err := history.NewEntry(parcelID, history.KindAssigned, parcel.Assigned, &courierID, "taken by alice", nil, now)

		require.NoError(t, err)
		require.NoError(t, e.Validate())
		assert.Zero(t, e.Sequence())
		assert.True(t, e.ParcelID().IsEqual(parcelID))
		assert.Equal(t, history.KindAssigned, e.Kind())
		assert.Equal(t, parcel.Assigned, e.Status())
		assert.Equal(t, "taken by alice", e.Notes())
		assert.Equal(t, now, e.CreatedAt())
	})

	t.Run("should reject unknown kind and status", func(t *testing.T) {
		_, err := history.NewEntry(kernel.NewUUID(), history.Kind("MOVED"), parcel.Unknown, nil, "", nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "kind")
		assert.Contains(t, err.Error(), "status")
	})

	t.Run("should keep sequence on restore", func(t *testing.T) {
		e, err := history.RestoreEntry(17, kernel.NewUUID(), history.KindCreated, parcel.Pending, nil, "", nil, now)

		require.NoError(t, err)
		assert.Equal(t, int64(17), e.Sequence())
	})

	t.Run("zero entry is not constructed", func(t *testing.T) {
		require.ErrorIs(t, history.Entry{}.Validate(), history.ErrEntryIsNotConstructed)
	})
}

func TestForParcel(t *testing.T) {
	now := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	p, err := parcel.NewParcel(kernel.NewUUID(), "PKG-9", kernel.NewUUID(), parcel.Details{
		PickupAddress: "a", DeliveryAddress: "b", WeightKg: 1,
	}, now)
	require.NoError(t, err)
	courierID := kernel.NewUUID()
	require.NoError(t, p.Take(courierID, now.Add(time.Minute)))
	loc, _ := kernel.NewLocation(1, 1, "z")
	require.NoError(t, p.UpdateLocation(courierID, loc, now.Add(2*time.Minute)))

	t.Run("should carry location only for location updates", func(t *testing.T) {
		withLocation, err := history.ForParcel(p, history.KindLocationUpdated, &courierID, "")
		require.NoError(t, err)
		require.NotNil(t, withLocation.Location())
		assert.Equal(t, now.Add(2*time.Minute), withLocation.CreatedAt())

		withoutLocation, err := history.ForParcel(p, history.KindStatusChanged, &courierID, "")
		require.NoError(t, err)
		assert.Nil(t, withoutLocation.Location())
	})
}
