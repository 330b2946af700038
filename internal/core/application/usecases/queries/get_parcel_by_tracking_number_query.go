package queries

import (
	"errors"
	"strings"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

// TrackingNumberMaxLength rejects obviously bogus lookups before they reach storage.
const TrackingNumberMaxLength = 32

var ErrGetParcelByTrackingNumberQueryIsNotConstructed = errors.New(
	"GetParcelByTrackingNumberQuery must be created via NewGetParcelByTrackingNumberQuery constructor",
)

// GetParcelByTrackingNumberQuery is the public tracking lookup.
type GetParcelByTrackingNumberQuery struct { //nolint:recvcheck //using for validation
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewGetParcelByTrackingNumberQuery trims and upper-cases the tracking number.
func NewGetParcelByTrackingNumberQuery(trackingNumber string) (GetParcelByTrackingNumberQuery, error) {
	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))
	if trackingNumber == "" {
		return GetParcelByTrackingNumberQuery{}, errs.NewValueIsRequiredError("tracking number")
	}
	if len(trackingNumber) > TrackingNumberMaxLength {
		return GetParcelByTrackingNumberQuery{}, errs.NewValueIsOutOfRangeError(
			"tracking number length", len(trackingNumber), 1, TrackingNumberMaxLength)
	}
	return GetParcelByTrackingNumberQuery{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q GetParcelByTrackingNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelByTrackingNumberQueryIsNotConstructed)
}

func (q GetParcelByTrackingNumberQuery) TrackingNumber() string {
	return q.trackingNumber
}
