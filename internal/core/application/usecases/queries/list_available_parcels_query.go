package queries

import (
	"errors"

	"parcelhub/internal/pkg/guard"
)

var ErrListAvailableParcelsQueryIsNotConstructed = errors.New(
	"ListAvailableParcelsQuery must be created via NewListAvailableParcelsQuery constructor",
)

// ListAvailableParcelsQuery lists the parcels any courier may take.
type ListAvailableParcelsQuery struct {
	guard guard.ConstructorGuard
}

func NewListAvailableParcelsQuery() ListAvailableParcelsQuery {
	return ListAvailableParcelsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListAvailableParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableParcelsQueryIsNotConstructed)
}
