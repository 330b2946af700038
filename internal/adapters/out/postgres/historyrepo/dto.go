// Package historyrepo stores the append-only parcel tracking log.
package historyrepo

import (
	"time"

	"parcelhub/internal/adapters/out/postgres/pgtypes"
	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// EntryDTO is one row of parcel_history. The serial ID doubles as the entry
// sequence number.
type EntryDTO struct {
	ID        int64                   `gorm:"primaryKey;autoIncrement"`
	ParcelID  uuid.UUID               `gorm:"type:uuid;not null;index:idx_parcel_history_parcel_created,priority:1"`
	Kind      string                  `gorm:"type:varchar(32);not null"`
	Status    string                  `gorm:"type:varchar(16);not null"`
	CourierID *uuid.UUID              `gorm:"type:uuid"`
	Notes     string                  `gorm:"type:text;not null"`
	Location  pgtypes.LocationColumns `gorm:"embedded;embeddedPrefix:location_"`
	CreatedAt time.Time               `gorm:"type:timestamptz;not null;autoCreateTime:false;index:idx_parcel_history_parcel_created,priority:2"`
}

func (EntryDTO) TableName() string {
	return "parcel_history"
}

func fromDomain(e history.Entry) EntryDTO {
	return EntryDTO{
		ParcelID:  e.ParcelID().Bytes(),
		Kind:      e.Kind().String(),
		Status:    e.Status().String(),
		CourierID: pgtypes.FromUUIDPtr(e.CourierID()),
		Notes:     e.Notes(),
		Location:  pgtypes.FromLocation(e.Location()),
		CreatedAt: e.CreatedAt(),
	}
}

func toDomain(dto EntryDTO) (history.Entry, error) {
	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return history.Entry{}, err
	}
	courierID, err := pgtypes.ToUUIDPtr(dto.CourierID)
	if err != nil {
		return history.Entry{}, err
	}
	status, err := parcel.ParseStatus(dto.Status)
	if err != nil {
		return history.Entry{}, err
	}
	location, err := dto.Location.ToLocation()
	if err != nil {
		return history.Entry{}, err
	}

	return history.RestoreEntry(
		dto.ID,
		parcelID,
		history.Kind(dto.Kind),
		status,
		courierID,
		dto.Notes,
		location,
		dto.CreatedAt.UTC(),
	)
}
