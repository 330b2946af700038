// Package readmodel holds the serializable views returned by commands and
// queries, published in notifications and stored in the cache, plus the
// cache keys that writers invalidate.
package readmodel

import (
	"time"

	"parcelhub/internal/core/domain/model/courier"
	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
)

type LocationView struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Zone      string  `json:"zone"`
}

type ParcelView struct {
	ID              string        `json:"id"`
	TrackingNumber  string        `json:"trackingNumber"`
	CustomerID      string        `json:"customerId"`
	CourierID       *string       `json:"courierId,omitempty"`
	PickupAddress   string        `json:"pickupAddress"`
	DeliveryAddress string        `json:"deliveryAddress"`
	WeightKg        float64       `json:"weight"`
	Description     string        `json:"description,omitempty"`
	Status          string        `json:"status"`
	CurrentLocation *LocationView `json:"currentLocation,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	AssignedAt      *time.Time    `json:"assignedAt,omitempty"`
	PickedUpAt      *time.Time    `json:"pickedUpAt,omitempty"`
	DeliveredAt     *time.Time    `json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time    `json:"cancelledAt,omitempty"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

type HistoryEntryView struct {
	Sequence  int64         `json:"id"`
	ParcelID  string        `json:"packageId"`
	Kind      string        `json:"kind"`
	Status    string        `json:"status"`
	CourierID *string       `json:"courierId,omitempty"`
	Notes     string        `json:"notes,omitempty"`
	Location  *LocationView `json:"locationData,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

type CourierView struct {
	ID              string        `json:"id"`
	Username        string        `json:"username"`
	Available       bool          `json:"available"`
	CurrentLocation *LocationView `json:"currentLocation,omitempty"`
}

func NewParcelView(p *parcel.Parcel) ParcelView {
	d := p.Details()
	return ParcelView{
		ID:              p.ID().String(),
		TrackingNumber:  p.TrackingNumber(),
		CustomerID:      p.CustomerID().String(),
		CourierID:       idString(p.CourierID()),
		PickupAddress:   d.PickupAddress,
		DeliveryAddress: d.DeliveryAddress,
		WeightKg:        d.WeightKg,
		Description:     d.Description,
		Status:          p.Status().String(),
		CurrentLocation: NewLocationView(p.Location()),
		CreatedAt:       p.CreatedAt(),
		AssignedAt:      p.AssignedAt(),
		PickedUpAt:      p.PickedUpAt(),
		DeliveredAt:     p.DeliveredAt(),
		CancelledAt:     p.CancelledAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
}

func NewParcelViews(parcels []*parcel.Parcel) []ParcelView {
	views := make([]ParcelView, 0, len(parcels))
	for _, p := range parcels {
		views = append(views, NewParcelView(p))
	}
	return views
}

func NewHistoryEntryView(e history.Entry) HistoryEntryView {
	return HistoryEntryView{
		Sequence:  e.Sequence(),
		ParcelID:  e.ParcelID().String(),
		Kind:      e.Kind().String(),
		Status:    e.Status().String(),
		CourierID: idString(e.CourierID()),
		Notes:     e.Notes(),
		Location:  NewLocationView(e.Location()),
		CreatedAt: e.CreatedAt(),
	}
}

func NewCourierView(c *courier.Courier) CourierView {
	return CourierView{
		ID:              c.ID().String(),
		Username:        c.Username(),
		Available:       c.Available(),
		CurrentLocation: NewLocationView(c.Location()),
	}
}

// NewLocationView returns nil for a nil location.
func NewLocationView(l *kernel.Location) *LocationView {
	if l == nil {
		return nil
	}
	return &LocationView{
		Latitude:  l.Latitude(),
		Longitude: l.Longitude(),
		Zone:      l.Zone(),
	}
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
