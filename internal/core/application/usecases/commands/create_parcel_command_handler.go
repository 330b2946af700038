package commands

import (
	"context"

	"parcelhub/internal/core/application/readmodel"
	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/ports"
)

// CreateParcelCommandHandler stores a new PENDING parcel with a fresh tracking
// number and its CREATED history entry, then announces it to the customer and
// the broadcast address.
type CreateParcelCommandHandler struct {
	coordinator     *Coordinator
	trackingNumbers ports.TrackingNumberGenerator
}

func NewCreateParcelCommandHandler(
	coordinator *Coordinator,
	trackingNumbers ports.TrackingNumberGenerator,
) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		coordinator:     coordinator,
		trackingNumbers: trackingNumbers,
	}
}

func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := parcel.NewParcel(
		cmd.ParcelID(),
		h.trackingNumbers.Next(),
		cmd.CustomerID(),
		cmd.Details(),
		h.coordinator.now(),
	)
	if err != nil {
		return nil, err
	}

	c := h.coordinator
	ctx, cancel := context.WithTimeout(ctx, c.storageTimeout)
	defer cancel()

	uow := c.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = c.commit(ctx, uow, p, change{kind: history.KindCreated, notes: "Package created"}); err != nil {
		return nil, err
	}

	c.invalidate(ctx, readmodel.InvalidationKeys(p, nil))
	c.logger.InfoContext(ctx, "parcel created",
		"parcel_id", p.ID().String(), "tracking_number", p.TrackingNumber())
	return p, nil
}
