package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
)

const (
	// MaxWeightKg is the heaviest parcel the network accepts.
	MaxWeightKg = 1000.0
	// MaxDescriptionLength bounds the free text description.
	MaxDescriptionLength = 500
)

var (
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

	ErrAlreadyAssigned      = errors.New("parcel is already assigned to a courier")
	ErrNotAssignedToCourier = errors.New("parcel is not assigned to this courier")
	ErrNotOwnedByCustomer   = errors.New("parcel does not belong to this customer")
	ErrPreconditionFailed   = errors.New("parcel precondition failed")
)

// Details is the immutable business payload of a parcel.
type Details struct {
	PickupAddress   string
	DeliveryAddress string
	WeightKg        float64
	Description     string
}

// Snapshot is the full persisted state of a parcel. Repositories read it via
// Parcel.Snapshot and rebuild aggregates from it with RestoreParcel.
type Snapshot struct {
	ID              kernel.UUID
	TrackingNumber  string
	CustomerID      kernel.UUID
	CourierID       *kernel.UUID
	Details         Details
	Status          Status
	CurrentLocation *kernel.Location
	CreatedAt       time.Time
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	UpdatedAt       time.Time
	Version         int64
}

// Parcel is the aggregate root for a delivery package.
//
// Every mutation goes through a method that enforces the lifecycle rules:
//   - Take binds a pending parcel to a courier
//   - Drop is the only way back to Pending and clears the courier
//   - ChangeStatus moves along the Transition table for the owning courier
//   - Cancel lets the owning customer cancel a non-terminal parcel
//   - UpdateLocation records a position while the parcel is active
//
// A Pending parcel never has a courier. Transition timestamps (assignedAt,
// pickedUpAt, deliveredAt, cancelledAt) are written the first time and kept.
//
// Parcel tracks the version and status it was loaded with. Repositories use
// both in the WHERE clause of the conditional update (see ExpectedVersion,
// ExpectedStatus), so a concurrent writer makes the update affect no rows.
type Parcel struct {
	id             kernel.UUID
	trackingNumber string
	customerID     kernel.UUID
	courierID      *kernel.UUID
	details        Details
	status         Status
	location       *kernel.Location

	createdAt   time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time
	updatedAt   time.Time

	version          int64
	persistedVersion int64
	persistedStatus  Status

	isConstructed bool
}

// NewParcel creates a Pending parcel with version 1.
// All invalid arguments are reported together via errors.Join.
func NewParcel(
	id kernel.UUID,
	trackingNumber string,
	customerID kernel.UUID,
	details Details,
	now time.Time,
) (*Parcel, error) {
	p := &Parcel{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(trackingNumber),
		p.setCustomerID(customerID),
		p.setDetails(details),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel rebuilds a parcel from storage and checks the courier/status invariant.
func RestoreParcel(s Snapshot) (*Parcel, error) {
	p := &Parcel{
		location:         s.CurrentLocation,
		createdAt:        s.CreatedAt,
		assignedAt:       s.AssignedAt,
		pickedUpAt:       s.PickedUpAt,
		deliveredAt:      s.DeliveredAt,
		cancelledAt:      s.CancelledAt,
		updatedAt:        s.UpdatedAt,
		version:          s.Version,
		persistedVersion: s.Version,
		persistedStatus:  s.Status,
		isConstructed:    true,
	}

	if err := errors.Join(
		p.setID(s.ID),
		p.setTrackingNumber(s.TrackingNumber),
		p.setCustomerID(s.CustomerID),
		p.setDetails(s.Details),
		p.setStatusAndCourier(s.Status, s.CourierID),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Parcel) ID() kernel.UUID {
	return p.id
}

func (p *Parcel) TrackingNumber() string {
	return p.trackingNumber
}

func (p *Parcel) CustomerID() kernel.UUID {
	return p.customerID
}

func (p *Parcel) CourierID() *kernel.UUID {
	return p.courierID
}

func (p *Parcel) Details() Details {
	return p.details
}

func (p *Parcel) Status() Status {
	return p.status
}

func (p *Parcel) Location() *kernel.Location {
	return p.location
}

func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Parcel) AssignedAt() *time.Time {
	return p.assignedAt
}

func (p *Parcel) PickedUpAt() *time.Time {
	return p.pickedUpAt
}

func (p *Parcel) DeliveredAt() *time.Time {
	return p.deliveredAt
}

func (p *Parcel) CancelledAt() *time.Time {
	return p.cancelledAt
}

func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Parcel) Version() int64 {
	return p.version
}

func (p *Parcel) ExpectedVersion() int64 {
	return p.persistedVersion
}

func (p *Parcel) ExpectedStatus() Status {
	return p.persistedStatus
}

// IsHeldBy reports whether courierID is the assigned courier.
func (p *Parcel) IsHeldBy(courierID kernel.UUID) bool {
	return p.courierID != nil && p.courierID.IsEqual(courierID)
}

// Snapshot exports the current state for persistence.
func (p *Parcel) Snapshot() Snapshot {
	return Snapshot{
		ID:              p.id,
		TrackingNumber:  p.trackingNumber,
		CustomerID:      p.customerID,
		CourierID:       p.courierID,
		Details:         p.details,
		Status:          p.status,
		CurrentLocation: p.location,
		CreatedAt:       p.createdAt,
		AssignedAt:      p.assignedAt,
		PickedUpAt:      p.pickedUpAt,
		DeliveredAt:     p.deliveredAt,
		CancelledAt:     p.cancelledAt,
		UpdatedAt:       p.updatedAt,
		Version:         p.version,
	}
}

// Take assigns a Pending parcel to courierID.
//
// Returns ErrAlreadyAssigned if another courier holds the parcel and an
// *InvalidTransitionError if the parcel is terminal.
func (p *Parcel) Take(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if p.status.IsActive() {
		return ErrAlreadyAssigned
	}

	next, err := Transition(p.status, Assigned)
	if err != nil {
		return err
	}

	p.courierID = &courierID
	p.apply(next, now)
	return nil
}

// Drop returns the parcel to Pending and clears the courier.
// Only the holding courier may drop, and never from a terminal state.
func (p *Parcel) Drop(courierID kernel.UUID, now time.Time) error {
	if !p.IsHeldBy(courierID) {
		return ErrNotAssignedToCourier
	}
	if p.status.IsTerminal() {
		return &InvalidTransitionError{From: p.status, To: Pending}
	}

	p.courierID = nil
	p.status = Pending
	p.touch(now)
	return nil
}

// ChangeStatus applies requested for the holding courier.
// The courier stays recorded on terminal parcels; releasing the Courier
// aggregate is up to the caller (see Status.IsTerminal).
func (p *Parcel) ChangeStatus(courierID kernel.UUID, requested Status, now time.Time) error {
	if !p.IsHeldBy(courierID) {
		return ErrNotAssignedToCourier
	}

	next, err := Transition(p.status, requested)
	if err != nil {
		return err
	}

	p.apply(next, now)
	return nil
}

// Cancel moves the parcel to Cancelled on behalf of its customer.
func (p *Parcel) Cancel(customerID kernel.UUID, now time.Time) error {
	if !p.customerID.IsEqual(customerID) {
		return ErrNotOwnedByCustomer
	}

	next, err := Transition(p.status, Cancelled)
	if err != nil {
		return err
	}

	p.apply(next, now)
	return nil
}

// UpdateLocation overwrites the current location. Status is unchanged.
func (p *Parcel) UpdateLocation(courierID kernel.UUID, location kernel.Location, now time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}
	if !p.IsHeldBy(courierID) {
		return ErrNotAssignedToCourier
	}
	if !p.status.IsActive() {
		return fmt.Errorf("%w: location can only be reported for an active parcel, status is %s",
			ErrPreconditionFailed, p.status)
	}

	p.location = &location
	p.touch(now)
	return nil
}

func (p *Parcel) apply(next Status, now time.Time) {
	p.status = next
	switch next { //nolint:exhaustive // other states carry no timestamp
	case Assigned:
		p.assignedAt = stampOnce(p.assignedAt, now)
	case PickedUp:
		p.pickedUpAt = stampOnce(p.pickedUpAt, now)
	case Delivered:
		p.deliveredAt = stampOnce(p.deliveredAt, now)
	case Cancelled:
		p.cancelledAt = stampOnce(p.cancelledAt, now)
	}
	p.touch(now)
}

func (p *Parcel) touch(now time.Time) {
	p.updatedAt = now
	p.version = p.persistedVersion + 1
}

func stampOnce(current *time.Time, now time.Time) *time.Time {
	if current != nil {
		return current
	}
	return &now
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingNumber(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	p.trackingNumber = trackingNumber
	return nil
}

func (p *Parcel) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	p.customerID = customerID
	return nil
}

func (p *Parcel) setDetails(d Details) error {
	d.PickupAddress = strings.TrimSpace(d.PickupAddress)
	d.DeliveryAddress = strings.TrimSpace(d.DeliveryAddress)

	var problems []error
	if d.PickupAddress == "" {
		problems = append(problems, errs.NewValueIsRequiredError("pickup address"))
	}
	if d.DeliveryAddress == "" {
		problems = append(problems, errs.NewValueIsRequiredError("delivery address"))
	}
	if d.WeightKg <= 0 || d.WeightKg > MaxWeightKg {
		problems = append(problems, errs.NewValueIsOutOfRangeError("weight", d.WeightKg, 0, MaxWeightKg))
	}
	if len(d.Description) > MaxDescriptionLength {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"description",
			fmt.Errorf("%d characters, at most %d allowed", len(d.Description), MaxDescriptionLength),
		))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	p.details = d
	return nil
}

func (p *Parcel) setStatusAndCourier(status Status, courierID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == Pending && courierID != nil {
		return errs.NewValueIsInvalidErrorWithCause("courier id", errors.New("pending parcel cannot have a courier"))
	}
	if status.IsActive() && courierID == nil {
		return errs.NewValueIsInvalidErrorWithCause("courier id", fmt.Errorf("%s parcel must have a courier", status))
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
	}

	p.status = status
	p.courierID = courierID
	return nil
}
