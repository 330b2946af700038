package commands

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/courier"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrTakeParcelCommandIsNotConstructed = errors.New(
	"TakeParcelCommand must be created via NewTakeParcelCommand constructor",
)

// TakeParcelCommand is a courier's request to take a pending parcel.
//
// Example:
//
//	cmd, err := NewTakeParcelCommand(parcelID, "alice")
//	if err != nil {
//	    return fmt.Errorf("invalid command: %w", err)
//	}
//	p, err := handler.Handle(ctx, cmd)
type TakeParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID        kernel.UUID
	courierUsername string

	guard guard.ConstructorGuard
}

func NewTakeParcelCommand(parcelID kernel.UUID, courierUsername string) (TakeParcelCommand, error) {
	command := TakeParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setParcelID(&command.parcelID, parcelID),
		setCourierUsername(&command.courierUsername, courierUsername),
	); err != nil {
		return TakeParcelCommand{}, err
	}

	return command, nil
}

func (c TakeParcelCommand) Validate() error {
	return c.guard.Validate(ErrTakeParcelCommandIsNotConstructed)
}

func (c TakeParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c TakeParcelCommand) CourierUsername() string {
	return c.courierUsername
}

// setParcelID and setCourierUsername are shared by every parcel command.
func setParcelID(dst *kernel.UUID, parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("parcel id", err)
	}
	*dst = parcelID
	return nil
}

func setCourierUsername(dst *string, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errs.NewValueIsRequiredError("courier username")
	}
	if len(username) > courier.UsernameMaxLength {
		return errs.NewValueIsOutOfRangeError("courier username length", len(username), 1, courier.UsernameMaxLength)
	}
	*dst = username
	return nil
}
