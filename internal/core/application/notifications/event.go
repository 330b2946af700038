package notifications

import (
	"time"

	"parcelhub/internal/core/application/readmodel"
	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/ports"
)

// Event is a committed change to one parcel, ready for fan-out.
type Event struct {
	Kind       history.Kind
	Parcel     readmodel.ParcelView
	OccurredAt time.Time
}

// Payload is the JSON document delivered to every address.
type Payload struct {
	PackageID  string                  `json:"packageId"`
	Kind       string                  `json:"kind"`
	Status     string                  `json:"status"`
	CourierID  *string                 `json:"courierId,omitempty"`
	CustomerID *string                 `json:"customerId,omitempty"`
	Location   *readmodel.LocationView `json:"location,omitempty"`
	Timestamp  time.Time               `json:"timestamp"`
}

func NewPayload(e Event) Payload {
	customerID := e.Parcel.CustomerID
	return Payload{
		PackageID:  e.Parcel.ID,
		Kind:       e.Kind.String(),
		Status:     e.Parcel.Status,
		CourierID:  e.Parcel.CourierID,
		CustomerID: &customerID,
		Location:   e.Parcel.CurrentLocation,
		Timestamp:  e.OccurredAt,
	}
}

// Addresses returns the recipients of e in delivery order: the customer,
// the courier when the parcel has one after the change, then broadcast.
func Addresses(e Event) []ports.Address {
	addresses := make([]ports.Address, 0, 3)
	addresses = append(addresses, ports.CustomerAddress(e.Parcel.CustomerID))
	if e.Parcel.CourierID != nil {
		addresses = append(addresses, ports.CourierAddress(*e.Parcel.CourierID))
	}
	return append(addresses, ports.BroadcastAddress())
}
