package commands

import (
	"context"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/parcel"
)

// DropParcelCommandHandler resets a parcel to PENDING, clears its courier and
// makes that courier available again. Dropping is not reachable through
// UpdateParcelStatusCommandHandler.
type DropParcelCommandHandler struct {
	coordinator *Coordinator
}

func NewDropParcelCommandHandler(coordinator *Coordinator) DropParcelCommandHandler {
	return DropParcelCommandHandler{
		coordinator: coordinator,
	}
}

func (h DropParcelCommandHandler) Handle(ctx context.Context, cmd DropParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.coordinator.mutate(ctx, "drop", cmd.ParcelID(),
		func(ctx context.Context, tx UoW, p *parcel.Parcel, now time.Time) (change, error) {
			c, err := courierByUsername(ctx, tx, cmd.CourierUsername())
			if err != nil {
				return change{}, err
			}

			if err = p.Drop(c.ID(), now); err != nil {
				return change{}, err
			}
			c.Release()
			if err = tx.CourierRepository().Update(ctx, c); err != nil {
				return change{}, err
			}

			actor := c.ID()
			return change{
				kind:  history.KindDropped,
				actor: &actor,
				notes: fmt.Sprintf("Package dropped by courier %s", c.Username()),
			}, nil
		})
}
