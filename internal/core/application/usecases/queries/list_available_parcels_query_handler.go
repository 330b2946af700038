package queries

import (
	"context"

	"parcelhub/internal/core/application/readmodel"
	"parcelhub/internal/core/domain/model/parcel"
	pkgcache "parcelhub/internal/pkg/cache"
)

// ListAvailableParcelsQueryHandler returns every PENDING parcel, oldest first.
//
// Example:
//
//	handler := NewListAvailableParcelsQueryHandler(rm)
//	views, err := handler.Handle(ctx, NewListAvailableParcelsQuery())
type ListAvailableParcelsQueryHandler struct {
	rm ReadModel
}

func NewListAvailableParcelsQueryHandler(rm ReadModel) ListAvailableParcelsQueryHandler {
	return ListAvailableParcelsQueryHandler{rm: rm}
}

func (h ListAvailableParcelsQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableParcelsQuery,
) ([]readmodel.ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return pkgcache.GetOrCompute(ctx, h.rm.cache, readmodel.AvailableParcelsKey(), h.rm.availableTTL(),
		func(ctx context.Context) ([]readmodel.ParcelView, error) {
			parcels, err := h.rm.repos.ParcelRepository().ListByStatus(ctx, parcel.Pending)
			if err != nil {
				return nil, err
			}
			return readmodel.NewParcelViews(parcels), nil
		})
}
