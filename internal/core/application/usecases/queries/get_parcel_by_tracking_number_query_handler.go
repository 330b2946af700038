package queries

import (
	"context"

	"parcelhub/internal/core/application/readmodel"
	pkgcache "parcelhub/internal/pkg/cache"
)

type GetParcelByTrackingNumberQueryHandler struct {
	rm ReadModel
}

func NewGetParcelByTrackingNumberQueryHandler(rm ReadModel) GetParcelByTrackingNumberQueryHandler {
	return GetParcelByTrackingNumberQueryHandler{rm: rm}
}

func (h GetParcelByTrackingNumberQueryHandler) Handle(
	ctx context.Context,
	query GetParcelByTrackingNumberQuery,
) (readmodel.ParcelView, error) {
	if err := query.Validate(); err != nil {
		return readmodel.ParcelView{}, err
	}

	key := readmodel.TrackingKey(query.TrackingNumber())
	return pkgcache.GetOrCompute(ctx, h.rm.cache, key, h.rm.ttl,
		func(ctx context.Context) (readmodel.ParcelView, error) {
			p, err := h.rm.repos.ParcelRepository().GetByTrackingNumber(ctx, query.TrackingNumber())
			if err != nil {
				return readmodel.ParcelView{}, err
			}
			return readmodel.NewParcelView(p), nil
		})
}
