package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrUpdateParcelLocationCommandIsNotConstructed = errors.New(
	"UpdateParcelLocationCommand must be created via NewUpdateParcelLocationCommand constructor",
)

// UpdateParcelLocationCommand reports where the holding courier is with the parcel.
//
// Example:
//
//	location, err := kernel.NewLocation(43.2389, 76.8897, "almaty-center")
//	if err != nil {
//	    return err
//	}
//	cmd, err := NewUpdateParcelLocationCommand(parcelID, "alice", location)
type UpdateParcelLocationCommand struct { //nolint:recvcheck //using for validation
	parcelID        kernel.UUID
	courierUsername string
	location        kernel.Location

	guard guard.ConstructorGuard
}

func NewUpdateParcelLocationCommand(
	parcelID kernel.UUID,
	courierUsername string,
	location kernel.Location,
) (UpdateParcelLocationCommand, error) {
	command := UpdateParcelLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setParcelID(&command.parcelID, parcelID),
		setCourierUsername(&command.courierUsername, courierUsername),
		command.setLocation(location),
	); err != nil {
		return UpdateParcelLocationCommand{}, err
	}

	return command, nil
}

func (c UpdateParcelLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelLocationCommandIsNotConstructed)
}

func (c UpdateParcelLocationCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c UpdateParcelLocationCommand) CourierUsername() string {
	return c.courierUsername
}

func (c UpdateParcelLocationCommand) Location() kernel.Location {
	return c.location
}

func (c *UpdateParcelLocationCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
