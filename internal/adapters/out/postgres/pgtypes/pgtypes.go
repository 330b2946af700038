// Package pgtypes holds the column types and error helpers shared by the
// postgres repositories.
package pgtypes

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// LocationColumns is embedded in DTOs that carry an optional location.
// All three columns are NULL when there is no location.
type LocationColumns struct {
	Latitude  *float64 `gorm:"type:double precision"`
	Longitude *float64 `gorm:"type:double precision"`
	Zone      *string  `gorm:"type:varchar(64)"`
}

func FromLocation(l *kernel.Location) LocationColumns {
	if l == nil {
		return LocationColumns{}
	}
	lat, lon, zone := l.Latitude(), l.Longitude(), l.Zone()
	return LocationColumns{
		Latitude:  &lat,
		Longitude: &lon,
		Zone:      &zone,
	}
}

func (c LocationColumns) ToLocation() (*kernel.Location, error) {
	if c.Latitude == nil || c.Longitude == nil {
		return nil, nil //nolint:nilnil // no location stored
	}
	var zone string
	if c.Zone != nil {
		zone = *c.Zone
	}
	l, err := kernel.NewLocation(*c.Latitude, *c.Longitude, zone)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func FromUUIDPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func ToUUIDPtr(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // nullable column
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// UTC normalizes timestamps read back from timestamptz columns.
func UTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
