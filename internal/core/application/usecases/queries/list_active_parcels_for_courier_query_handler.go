package queries

import (
	"context"

	"parcelhub/internal/core/application/readmodel"
	pkgcache "parcelhub/internal/pkg/cache"
)

// ListActiveParcelsForCourierQueryHandler returns the ASSIGNED, PICKED_UP and
// IN_TRANSIT parcels of a courier. An unknown courier is reported as
// errs.ErrObjectNotFound rather than an empty list.
type ListActiveParcelsForCourierQueryHandler struct {
	rm ReadModel
}

func NewListActiveParcelsForCourierQueryHandler(rm ReadModel) ListActiveParcelsForCourierQueryHandler {
	return ListActiveParcelsForCourierQueryHandler{rm: rm}
}

func (h ListActiveParcelsForCourierQueryHandler) Handle(
	ctx context.Context,
	query ListActiveParcelsForCourierQuery,
) ([]readmodel.ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	key := readmodel.CourierActiveParcelsKey(query.CourierID())
	return pkgcache.GetOrCompute(ctx, h.rm.cache, key, h.rm.ttl,
		func(ctx context.Context) ([]readmodel.ParcelView, error) {
			if _, err := h.rm.repos.CourierRepository().Get(ctx, query.CourierID()); err != nil {
				return nil, err
			}

			parcels, err := h.rm.repos.ParcelRepository().ListActiveByCourier(ctx, query.CourierID())
			if err != nil {
				return nil, err
			}
			return readmodel.NewParcelViews(parcels), nil
		})
}
