package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrDropParcelCommandIsNotConstructed = errors.New(
	"DropParcelCommand must be created via NewDropParcelCommand constructor",
)

// DropParcelCommand is the holding courier giving a parcel back to the pool.
type DropParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID        kernel.UUID
	courierUsername string

	guard guard.ConstructorGuard
}

func NewDropParcelCommand(parcelID kernel.UUID, courierUsername string) (DropParcelCommand, error) {
	command := DropParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setParcelID(&command.parcelID, parcelID),
		setCourierUsername(&command.courierUsername, courierUsername),
	); err != nil {
		return DropParcelCommand{}, err
	}

	return command, nil
}

func (c DropParcelCommand) Validate() error {
	return c.guard.Validate(ErrDropParcelCommandIsNotConstructed)
}

func (c DropParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c DropParcelCommand) CourierUsername() string {
	return c.courierUsername
}
