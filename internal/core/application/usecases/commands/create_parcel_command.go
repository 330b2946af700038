package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand registers a new parcel for a customer.
// The parcel id is generated here so callers can refer to it before the handler runs.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand(customerID, parcel.Details{
//	    PickupAddress:   "Abay 10",
//	    DeliveryAddress: "Dostyk 5",
//	    WeightKg:        2.5,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid parcel: %w", err)
//	}
//	p, err := handler.Handle(ctx, cmd)
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID   kernel.UUID
	customerID kernel.UUID
	details    parcel.Details

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand validates the customer and the required details.
// Weight and description bounds are checked again by parcel.NewParcel.
func NewCreateParcelCommand(customerID kernel.UUID, details parcel.Details) (CreateParcelCommand, error) {
	command := CreateParcelCommand{
		parcelID: kernel.NewUUID(),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomerID(customerID),
		command.setDetails(details),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return command, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c CreateParcelCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateParcelCommand) Details() parcel.Details {
	return c.details
}

func (c *CreateParcelCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}

	c.customerID = customerID
	return nil
}

func (c *CreateParcelCommand) setDetails(details parcel.Details) error {
	var problems []error
	if details.PickupAddress == "" {
		problems = append(problems, errs.NewValueIsRequiredError("pickup address"))
	}
	if details.DeliveryAddress == "" {
		problems = append(problems, errs.NewValueIsRequiredError("delivery address"))
	}
	if details.WeightKg <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("weight", details.WeightKg, 0, parcel.MaxWeightKg))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.details = details
	return nil
}
