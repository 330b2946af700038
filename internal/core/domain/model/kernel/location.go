package kernel

import (
	"errors"
	"fmt"
	"strings"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	// ZoneMaxLength bounds the free-form zone label reported by couriers.
	ZoneMaxLength = 64
)

// ErrLocationIsNotConstructed is returned when a zero Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is a geographic snapshot reported by a courier: WGS84 latitude and
// longitude plus a zone label (district, depot, city area).
//
// Location is an immutable value object. The zero value is invalid.
//
// Example:
//
//	loc, err := kernel.NewLocation(52.5200, 13.4050, "berlin-mitte")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(loc) // Location(52.520000,13.405000 berlin-mitte)
type Location struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	zone      string
	guard     guard.ConstructorGuard
}

// NewLocation validates the coordinates and the zone label.
// Latitude must be within [-90, 90], longitude within [-180, 180].
// The zone is trimmed and may be empty, but not longer than ZoneMaxLength.
// All violations are reported together.
func NewLocation(latitude, longitude float64, zone string) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		loc.setLatitude(latitude),
		loc.setLongitude(longitude),
		loc.setZone(zone),
	); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate fails for a Location that was not built by NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Latitude() float64 {
	return l.latitude
}

func (l Location) Longitude() float64 {
	return l.longitude
}

func (l Location) Zone() string {
	return l.zone
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f %s)", l.latitude, l.longitude, l.zone)
}

// IsEqual compares two locations. Both must be constructed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

func (l *Location) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	l.longitude = longitude
	return nil
}

func (l *Location) setZone(zone string) error {
	zone = strings.TrimSpace(zone)
	if len(zone) > ZoneMaxLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"zone",
			fmt.Errorf("zone label is %d characters, at most %d allowed", len(zone), ZoneMaxLength),
		)
	}
	l.zone = zone
	return nil
}
