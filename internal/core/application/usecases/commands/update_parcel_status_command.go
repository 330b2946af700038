package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/guard"
)

var ErrUpdateParcelStatusCommandIsNotConstructed = errors.New(
	"UpdateParcelStatusCommand must be created via NewUpdateParcelStatusCommand constructor",
)

// UpdateParcelStatusCommand asks to move a parcel to status on behalf of its courier.
//
// Example:
//
//	cmd, err := NewUpdateParcelStatusCommand(parcelID, "alice", parcel.PickedUp)
type UpdateParcelStatusCommand struct { //nolint:recvcheck //using for validation
	parcelID        kernel.UUID
	courierUsername string
	status          parcel.Status

	guard guard.ConstructorGuard
}

func NewUpdateParcelStatusCommand(
	parcelID kernel.UUID,
	courierUsername string,
	status parcel.Status,
) (UpdateParcelStatusCommand, error) {
	command := UpdateParcelStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setParcelID(&command.parcelID, parcelID),
		setCourierUsername(&command.courierUsername, courierUsername),
		command.setStatus(status),
	); err != nil {
		return UpdateParcelStatusCommand{}, err
	}

	return command, nil
}

func (c UpdateParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelStatusCommandIsNotConstructed)
}

func (c UpdateParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c UpdateParcelStatusCommand) CourierUsername() string {
	return c.courierUsername
}

func (c UpdateParcelStatusCommand) Status() parcel.Status {
	return c.status
}

func (c *UpdateParcelStatusCommand) setStatus(status parcel.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
