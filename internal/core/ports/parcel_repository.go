package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
)

// ParcelRepository persists Parcel aggregates.
//
// Update is a conditional write: it only applies when the stored row still
// has p.ExpectedVersion() and p.ExpectedStatus(). Otherwise it changes
// nothing and returns an error matching errs.ErrVersionIsInvalid, so the
// caller can reload and re-validate against the newer state.
//
// Get and GetByTrackingNumber return an error matching errs.ErrObjectNotFound
// for unknown parcels. List methods return parcels ordered by creation time.
type ParcelRepository interface {
	Add(ctx context.Context, p *parcel.Parcel) error
	Update(ctx context.Context, p *parcel.Parcel) error
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*parcel.Parcel, error)
	ListByStatus(ctx context.Context, status parcel.Status) ([]*parcel.Parcel, error)
	ListActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*parcel.Parcel, error)
	ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*parcel.Parcel, error)
}
