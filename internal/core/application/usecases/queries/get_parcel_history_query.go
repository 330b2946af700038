package queries

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrGetParcelHistoryQueryIsNotConstructed = errors.New(
	"GetParcelHistoryQuery must be created via NewGetParcelHistoryQuery constructor",
)

// GetParcelHistoryQuery asks for the full tracking log of one parcel.
//
// Example:
//
//	query, err := NewGetParcelHistoryQuery(parcelID)
//	if err != nil {
//	    return err
//	}
//	entries, err := handler.Handle(ctx, query)
type GetParcelHistoryQuery struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetParcelHistoryQuery(parcelID kernel.UUID) (GetParcelHistoryQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetParcelHistoryQuery{}, errs.NewValueIsRequiredErrorWithCause("parcel id", err)
	}
	return GetParcelHistoryQuery{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetParcelHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelHistoryQueryIsNotConstructed)
}

func (q GetParcelHistoryQuery) ParcelID() kernel.UUID {
	return q.parcelID
}
