package readmodel

import (
	"fmt"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
)

const availableParcelsKey = "parcels:available"

func AvailableParcelsKey() string {
	return availableParcelsKey
}

func CourierActiveParcelsKey(courierID kernel.UUID) string {
	return fmt.Sprintf("parcels:courier:%s:active", courierID)
}

func CustomerParcelsKey(customerID kernel.UUID) string {
	return fmt.Sprintf("parcels:customer:%s", customerID)
}

func ParcelHistoryKey(parcelID kernel.UUID) string {
	return fmt.Sprintf("parcels:%s:history", parcelID)
}

func TrackingKey(trackingNumber string) string {
	return fmt.Sprintf("parcels:tracking:%s", trackingNumber)
}

// InvalidationKeys lists every cached read that a committed change to p can
// make stale. previousCourier is the courier that held p before the change
// (set for drops), so its active list is refreshed too.
func InvalidationKeys(p *parcel.Parcel, previousCourier *kernel.UUID) []string {
	keys := []string{
		availableParcelsKey,
		CustomerParcelsKey(p.CustomerID()),
		ParcelHistoryKey(p.ID()),
		TrackingKey(p.TrackingNumber()),
	}
	if id := p.CourierID(); id != nil {
		keys = append(keys, CourierActiveParcelsKey(*id))
	}
	if previousCourier != nil && (p.CourierID() == nil || !p.CourierID().IsEqual(*previousCourier)) {
		keys = append(keys, CourierActiveParcelsKey(*previousCourier))
	}
	return keys
}
