package commands

import (
	"context"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/parcel"
)

// UpdateParcelStatusCommandHandler applies a status change requested by the
// holding courier. The edge must be accepted by parcel.Transition. Reaching
// DELIVERED or CANCELLED releases the courier in the same unit of work.
type UpdateParcelStatusCommandHandler struct {
	coordinator *Coordinator
}

func NewUpdateParcelStatusCommandHandler(coordinator *Coordinator) UpdateParcelStatusCommandHandler {
	return UpdateParcelStatusCommandHandler{
		coordinator: coordinator,
	}
}

func (h UpdateParcelStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateParcelStatusCommand,
) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.coordinator.mutate(ctx, "update_status", cmd.ParcelID(),
		func(ctx context.Context, tx UoW, p *parcel.Parcel, now time.Time) (change, error) {
			c, err := courierByUsername(ctx, tx, cmd.CourierUsername())
			if err != nil {
				return change{}, err
			}

			if err = p.ChangeStatus(c.ID(), cmd.Status(), now); err != nil {
				return change{}, err
			}

			if p.Status().IsTerminal() {
				c.Release()
				if err = tx.CourierRepository().Update(ctx, c); err != nil {
					return change{}, err
				}
			}

			actor := c.ID()
			return change{
				kind:  history.KindStatusChanged,
				actor: &actor,
				notes: fmt.Sprintf("Status changed to %s by courier %s", p.Status(), c.Username()),
			}, nil
		})
}
