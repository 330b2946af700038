package commands

import (
	"context"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/parcel"
)

// TakeParcelCommandHandler assigns a pending parcel to the calling courier.
//
// The parcel and the courier are written with conditional updates in one unit
// of work. Of several concurrent takes on one parcel exactly one commits. The
// others are retried, see the committed assignment and fail with
// parcel.ErrAlreadyAssigned. A courier racing for two parcels gets
// courier.ErrCourierUnavailable on the second.
type TakeParcelCommandHandler struct {
	coordinator *Coordinator
}

func NewTakeParcelCommandHandler(coordinator *Coordinator) TakeParcelCommandHandler {
	return TakeParcelCommandHandler{
		coordinator: coordinator,
	}
}

func (h TakeParcelCommandHandler) Handle(ctx context.Context, cmd TakeParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.coordinator.mutate(ctx, "take", cmd.ParcelID(),
		func(ctx context.Context, tx UoW, p *parcel.Parcel, now time.Time) (change, error) {
			c, err := courierByUsername(ctx, tx, cmd.CourierUsername())
			if err != nil {
				return change{}, err
			}

			if err = p.Take(c.ID(), now); err != nil {
				return change{}, err
			}
			if err = c.Occupy(); err != nil {
				return change{}, err
			}
			if err = tx.CourierRepository().Update(ctx, c); err != nil {
				return change{}, err
			}

			actor := c.ID()
			return change{
				kind:  history.KindAssigned,
				actor: &actor,
				notes: fmt.Sprintf("Package taken by courier %s", c.Username()),
			}, nil
		})
}
