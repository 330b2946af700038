// Package courierrepo maps Courier aggregates to the couriers table.
package courierrepo

import (
	"parcelhub/internal/adapters/out/postgres/pgtypes"
	"parcelhub/internal/core/domain/model/courier"
	"parcelhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is the row layout of the couriers table.
type CourierDTO struct {
	ID        uuid.UUID               `gorm:"type:uuid;primaryKey"`
	Username  string                  `gorm:"type:varchar(64);not null;uniqueIndex"`
	Available bool                    `gorm:"not null"`
	Location  pgtypes.LocationColumns `gorm:"embedded;embeddedPrefix:location_"`
	Version   int64                   `gorm:"not null"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

// changes lists the columns a conditional update writes. A map keeps zero
// values and NULLs in the statement.
func (dto CourierDTO) changes() map[string]any {
	return map[string]any{
		"available":          dto.Available,
		"location_latitude":  dto.Location.Latitude,
		"location_longitude": dto.Location.Longitude,
		"location_zone":      dto.Location.Zone,
		"version":            dto.Version,
	}
}

func fromDomain(c *courier.Courier) CourierDTO {
	s := c.Snapshot()
	return CourierDTO{
		ID:        s.ID.Bytes(),
		Username:  s.Username,
		Available: s.Available,
		Location:  pgtypes.FromLocation(s.CurrentLocation),
		Version:   s.Version,
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	location, err := dto.Location.ToLocation()
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(courier.Snapshot{
		ID:              id,
		Username:        dto.Username,
		Available:       dto.Available,
		CurrentLocation: location,
		Version:         dto.Version,
	})
}
