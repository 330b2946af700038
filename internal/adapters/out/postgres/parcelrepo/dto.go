// Package parcelrepo maps Parcel aggregates to the parcels table.
package parcelrepo

import (
	"time"

	"parcelhub/internal/adapters/out/postgres/pgtypes"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO is the row layout of the parcels table. Status is stored by name
// so the column stays readable in ad hoc queries.
type ParcelDTO struct {
	ID              uuid.UUID               `gorm:"type:uuid;primaryKey"`
	TrackingNumber  string                  `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID      uuid.UUID               `gorm:"type:uuid;not null;index"`
	CourierID       *uuid.UUID              `gorm:"type:uuid;index"`
	PickupAddress   string                  `gorm:"type:varchar(512);not null"`
	DeliveryAddress string                  `gorm:"type:varchar(512);not null"`
	WeightKg        float64                 `gorm:"type:double precision;not null"`
	Description     string                  `gorm:"type:text;not null;default:''"`
	Status          string                  `gorm:"type:varchar(16);not null;index"`
	Location        pgtypes.LocationColumns `gorm:"embedded;embeddedPrefix:location_"`
	CreatedAt       time.Time               `gorm:"type:timestamptz;not null;autoCreateTime:false"`
	AssignedAt      *time.Time              `gorm:"type:timestamptz"`
	PickedUpAt      *time.Time              `gorm:"type:timestamptz"`
	DeliveredAt     *time.Time              `gorm:"type:timestamptz"`
	CancelledAt     *time.Time              `gorm:"type:timestamptz"`
	UpdatedAt       time.Time               `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
	Version         int64                   `gorm:"not null"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

// changes lists the mutable columns. Identity, customer, details and
// creation time never change after Add.
func (dto ParcelDTO) changes() map[string]any {
	return map[string]any{
		"courier_id":         dto.CourierID,
		"status":             dto.Status,
		"location_latitude":  dto.Location.Latitude,
		"location_longitude": dto.Location.Longitude,
		"location_zone":      dto.Location.Zone,
		"assigned_at":        dto.AssignedAt,
		"picked_up_at":       dto.PickedUpAt,
		"delivered_at":       dto.DeliveredAt,
		"cancelled_at":       dto.CancelledAt,
		"updated_at":         dto.UpdatedAt,
		"version":            dto.Version,
	}
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	s := p.Snapshot()
	return ParcelDTO{
		ID:              s.ID.Bytes(),
		TrackingNumber:  s.TrackingNumber,
		CustomerID:      s.CustomerID.Bytes(),
		CourierID:       pgtypes.FromUUIDPtr(s.CourierID),
		PickupAddress:   s.Details.PickupAddress,
		DeliveryAddress: s.Details.DeliveryAddress,
		WeightKg:        s.Details.WeightKg,
		Description:     s.Details.Description,
		Status:          s.Status.String(),
		Location:        pgtypes.FromLocation(s.CurrentLocation),
		CreatedAt:       s.CreatedAt,
		AssignedAt:      s.AssignedAt,
		PickedUpAt:      s.PickedUpAt,
		DeliveredAt:     s.DeliveredAt,
		CancelledAt:     s.CancelledAt,
		UpdatedAt:       s.UpdatedAt,
		Version:         s.Version,
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := pgtypes.ToUUIDPtr(dto.CourierID)
	if err != nil {
		return nil, err
	}
	status, err := parcel.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	location, err := dto.Location.ToLocation()
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(parcel.Snapshot{
		ID:             id,
		TrackingNumber: dto.TrackingNumber,
		CustomerID:     customerID,
		CourierID:      courierID,
		Details: parcel.Details{
			PickupAddress:   dto.PickupAddress,
			DeliveryAddress: dto.DeliveryAddress,
			WeightKg:        dto.WeightKg,
			Description:     dto.Description,
		},
		Status:          status,
		CurrentLocation: location,
		CreatedAt:       dto.CreatedAt.UTC(),
		AssignedAt:      pgtypes.UTC(dto.AssignedAt),
		PickedUpAt:      pgtypes.UTC(dto.PickedUpAt),
		DeliveredAt:     pgtypes.UTC(dto.DeliveredAt),
		CancelledAt:     pgtypes.UTC(dto.CancelledAt),
		UpdatedAt:       dto.UpdatedAt.UTC(),
		Version:         dto.Version,
	})
}
