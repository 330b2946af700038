package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrCancelParcelCommandIsNotConstructed = errors.New(
	"CancelParcelCommand must be created via NewCancelParcelCommand constructor",
)

// CancelParcelCommand is the owning customer cancelling a parcel.
type CancelParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID   kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelParcelCommand(parcelID, customerID kernel.UUID) (CancelParcelCommand, error) {
	command := CancelParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setParcelID(&command.parcelID, parcelID),
		command.setCustomerID(customerID),
	); err != nil {
		return CancelParcelCommand{}, err
	}

	return command, nil
}

func (c CancelParcelCommand) Validate() error {
	return c.guard.Validate(ErrCancelParcelCommandIsNotConstructed)
}

func (c CancelParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c CancelParcelCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *CancelParcelCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}

	c.customerID = customerID
	return nil
}
