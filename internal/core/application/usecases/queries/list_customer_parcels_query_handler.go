package queries

import (
	"context"

	"parcelhub/internal/core/application/readmodel"
	pkgcache "parcelhub/internal/pkg/cache"
)

// ListCustomerParcelsQueryHandler returns all parcels of a customer, oldest first.
// Customers are not stored, so an unknown customer simply has no parcels.
type ListCustomerParcelsQueryHandler struct {
	rm ReadModel
}

func NewListCustomerParcelsQueryHandler(rm ReadModel) ListCustomerParcelsQueryHandler {
	return ListCustomerParcelsQueryHandler{rm: rm}
}

func (h ListCustomerParcelsQueryHandler) Handle(
	ctx context.Context,
	query ListCustomerParcelsQuery,
) ([]readmodel.ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	key := readmodel.CustomerParcelsKey(query.CustomerID())
	return pkgcache.GetOrCompute(ctx, h.rm.cache, key, h.rm.ttl,
		func(ctx context.Context) ([]readmodel.ParcelView, error) {
			parcels, err := h.rm.repos.ParcelRepository().ListByCustomer(ctx, query.CustomerID())
			if err != nil {
				return nil, err
			}
			return readmodel.NewParcelViews(parcels), nil
		})
}
