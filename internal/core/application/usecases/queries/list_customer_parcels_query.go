package queries

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrListCustomerParcelsQueryIsNotConstructed = errors.New(
	"ListCustomerParcelsQuery must be created via NewListCustomerParcelsQuery constructor",
)

// ListCustomerParcelsQuery lists every parcel of a customer, terminal ones included.
type ListCustomerParcelsQuery struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListCustomerParcelsQuery(customerID kernel.UUID) (ListCustomerParcelsQuery, error) {
	if err := customerID.Validate(); err != nil {
		return ListCustomerParcelsQuery{}, errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	return ListCustomerParcelsQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListCustomerParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerParcelsQueryIsNotConstructed)
}

func (q ListCustomerParcelsQuery) CustomerID() kernel.UUID {
	return q.customerID
}
