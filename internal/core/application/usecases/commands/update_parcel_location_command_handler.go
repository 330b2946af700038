package commands

import (
	"context"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/parcel"
)

// UpdateParcelLocationCommandHandler records the current position of an
// active parcel and moves its courier to the same point. The status is left
// unchanged. Inactive parcels fail with parcel.ErrPreconditionFailed.
type UpdateParcelLocationCommandHandler struct {
	coordinator *Coordinator
}

func NewUpdateParcelLocationCommandHandler(coordinator *Coordinator) UpdateParcelLocationCommandHandler {
	return UpdateParcelLocationCommandHandler{
		coordinator: coordinator,
	}
}

func (h UpdateParcelLocationCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateParcelLocationCommand,
) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.coordinator.mutate(ctx, "update_location", cmd.ParcelID(),
		func(ctx context.Context, tx UoW, p *parcel.Parcel, now time.Time) (change, error) {
			c, err := courierByUsername(ctx, tx, cmd.CourierUsername())
			if err != nil {
				return change{}, err
			}

			location := cmd.Location()
			if err = p.UpdateLocation(c.ID(), location, now); err != nil {
				return change{}, err
			}
			if err = c.MoveTo(location); err != nil {
				return change{}, err
			}
			if err = tx.CourierRepository().Update(ctx, c); err != nil {
				return change{}, err
			}

			actor := c.ID()
			return change{
				kind:  history.KindLocationUpdated,
				actor: &actor,
				notes: fmt.Sprintf("Courier %s reported %s", c.Username(), location),
			}, nil
		})
}
