package courier

import (
	"errors"
	"fmt"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
)

// UsernameMaxLength bounds the identity-provider username.
const UsernameMaxLength = 64

var (
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")
	ErrCourierUnavailable      = errors.New("courier is not available")
)

// Snapshot is the persisted state of a courier.
type Snapshot struct {
	ID              kernel.UUID
	Username        string
	Available       bool
	CurrentLocation *kernel.Location
	Version         int64
}

// Courier is the aggregate root for a delivery courier.
//
// Available is false while the courier holds an active parcel. Occupy and
// Release are the only mutators of that flag and are called by the parcel
// operations (take, drop, terminal status change).
//
// Like parcel.Parcel, a Courier remembers the version and availability it
// was loaded with so the repository can issue a conditional update.
type Courier struct {
	id        kernel.UUID
	username  string
	available bool
	location  *kernel.Location

	version            int64
	persistedVersion   int64
	persistedAvailable bool

	isConstructed bool
}

// NewCourier registers an available courier without a known location.
//
// Example:
//
//	c, err := courier.NewCourier(kernel.NewUUID(), "alice")
//	if err != nil {
//	    return err
//	}
//	_ = c.Occupy() // nil, c.Available() is now false
func NewCourier(id kernel.UUID, username string) (*Courier, error) {
	c := &Courier{
		available:     true,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(c.setID(id), c.setUsername(username)); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier rebuilds a courier from storage.
func RestoreCourier(s Snapshot) (*Courier, error) {
	c := &Courier{
		available:          s.Available,
		location:           s.CurrentLocation,
		version:            s.Version,
		persistedVersion:   s.Version,
		persistedAvailable: s.Available,
		isConstructed:      true,
	}

	if err := errors.Join(c.setID(s.ID), c.setUsername(s.Username)); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}
	return nil
}

func (c *Courier) ID() kernel.UUID {
	return c.id
}

func (c *Courier) Username() string {
	return c.username
}

func (c *Courier) Available() bool {
	return c.available
}

func (c *Courier) Location() *kernel.Location {
	return c.location
}

func (c *Courier) Version() int64 {
	return c.version
}

func (c *Courier) ExpectedVersion() int64 {
	return c.persistedVersion
}

func (c *Courier) ExpectedAvailable() bool {
	return c.persistedAvailable
}

// Snapshot exports the current state for persistence.
func (c *Courier) Snapshot() Snapshot {
	return Snapshot{
		ID:              c.id,
		Username:        c.username,
		Available:       c.available,
		CurrentLocation: c.location,
		Version:         c.version,
	}
}

// Occupy marks the courier busy. It fails with ErrCourierUnavailable when
// the courier already holds a parcel.
func (c *Courier) Occupy() error {
	if !c.available {
		return ErrCourierUnavailable
	}
	c.available = false
	c.touch()
	return nil
}

// Release makes the courier available again. Releasing an available courier is a no-op.
func (c *Courier) Release() {
	if c.available {
		return
	}
	c.available = true
	c.touch()
}

// MoveTo records the courier's last reported position.
func (c *Courier) MoveTo(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = &location
	c.touch()
	return nil
}

func (c *Courier) touch() {
	c.version = c.persistedVersion + 1
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	if len(username) > UsernameMaxLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"username",
			fmt.Errorf("%d characters, at most %d allowed", len(username), UsernameMaxLength),
		)
	}
	c.username = username
	return nil
}
