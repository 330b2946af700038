package queries

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrListActiveParcelsForCourierQueryIsNotConstructed = errors.New(
	"ListActiveParcelsForCourierQuery must be created via NewListActiveParcelsForCourierQuery constructor",
)

// ListActiveParcelsForCourierQuery lists the non-terminal parcels a courier holds.
type ListActiveParcelsForCourierQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListActiveParcelsForCourierQuery(courierID kernel.UUID) (ListActiveParcelsForCourierQuery, error) {
	if err := courierID.Validate(); err != nil {
		return ListActiveParcelsForCourierQuery{}, errs.NewValueIsRequiredErrorWithCause("courier id", err)
	}
	return ListActiveParcelsForCourierQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListActiveParcelsForCourierQuery) Validate() error {
	return q.guard.Validate(ErrListActiveParcelsForCourierQueryIsNotConstructed)
}

func (q ListActiveParcelsForCourierQuery) CourierID() kernel.UUID {
	return q.courierID
}
