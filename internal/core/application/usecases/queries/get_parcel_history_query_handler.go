package queries

import (
	"context"

	"parcelhub/internal/core/application/readmodel"
	pkgcache "parcelhub/internal/pkg/cache"
)

// GetParcelHistoryQueryHandler returns the history of a parcel oldest first.
// An unknown parcel is reported as errs.ErrObjectNotFound, a known parcel
// always has at least its creation entry.
type GetParcelHistoryQueryHandler struct {
	rm ReadModel
}

func NewGetParcelHistoryQueryHandler(rm ReadModel) GetParcelHistoryQueryHandler {
	return GetParcelHistoryQueryHandler{rm: rm}
}

func (h GetParcelHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetParcelHistoryQuery,
) ([]readmodel.HistoryEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	key := readmodel.ParcelHistoryKey(query.ParcelID())
	return pkgcache.GetOrCompute(ctx, h.rm.cache, key, h.rm.ttl,
		func(ctx context.Context) ([]readmodel.HistoryEntryView, error) {
			if _, err := h.rm.repos.ParcelRepository().Get(ctx, query.ParcelID()); err != nil {
				return nil, err
			}

			entries, err := h.rm.repos.HistoryLog().ListByParcel(ctx, query.ParcelID())
			if err != nil {
				return nil, err
			}

			views := make([]readmodel.HistoryEntryView, 0, len(entries))
			for _, e := range entries {
				views = append(views, readmodel.NewHistoryEntryView(e))
			}
			return views, nil
		})
}
