package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/parcel"
)

// CancelParcelCommandHandler cancels a non-terminal parcel for its customer.
// A courier holding the parcel is released in the same unit of work.
type CancelParcelCommandHandler struct {
	coordinator *Coordinator
}

func NewCancelParcelCommandHandler(coordinator *Coordinator) CancelParcelCommandHandler {
	return CancelParcelCommandHandler{
		coordinator: coordinator,
	}
}

func (h CancelParcelCommandHandler) Handle(ctx context.Context, cmd CancelParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.coordinator.mutate(ctx, "cancel", cmd.ParcelID(),
		func(ctx context.Context, tx UoW, p *parcel.Parcel, now time.Time) (change, error) {
			holder := p.CourierID()
			if err := p.Cancel(cmd.CustomerID(), now); err != nil {
				return change{}, err
			}

			if holder != nil {
				c, err := tx.CourierRepository().Get(ctx, *holder)
				if err != nil {
					return change{}, notFound(err, ErrCourierNotFound)
				}
				c.Release()
				if err = tx.CourierRepository().Update(ctx, c); err != nil {
					return change{}, err
				}
			}

			return change{
				kind:  history.KindStatusChanged,
				notes: "Package cancelled by customer",
			}, nil
		})
}
