// Package history models the append-only tracking log of a parcel.
package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"
)

// NotesMaxLength bounds the human readable note stored with an entry.
const NotesMaxLength = 500

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Kind names the operation that produced an entry.
type Kind string

const (
	KindCreated         Kind = "CREATED"
	KindAssigned        Kind = "ASSIGNED"
	KindDropped         Kind = "DROPPED"
	KindStatusChanged   Kind = "STATUS_CHANGED"
	KindLocationUpdated Kind = "LOCATION_UPDATED"
)

// Validate rejects kinds outside the known set.
func (k Kind) Validate() error {
	switch k {
	case KindCreated, KindAssigned, KindDropped, KindStatusChanged, KindLocationUpdated:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a history kind", string(k)))
}

func (k Kind) String() string {
	return string(k)
}

// Entry is one immutable audit record: the parcel status after an accepted
// operation, who caused it, optional location data and when it happened.
//
// The sequence number is assigned by the store on append and breaks ties
// between entries with equal CreatedAt.
type Entry struct {
	sequence  int64
	parcelID  kernel.UUID
	kind      Kind
	status    parcel.Status
	courierID *kernel.UUID
	notes     string
	location  *kernel.Location
	createdAt time.Time

	isConstructed bool
}

// NewEntry builds an entry that has not been appended yet (Sequence is 0).
func NewEntry(
	parcelID kernel.UUID,
	kind Kind,
	status parcel.Status,
	courierID *kernel.UUID,
	notes string,
	location *kernel.Location,
	createdAt time.Time,
) (Entry, error) {
	e := Entry{
		courierID:     courierID,
		location:      location,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		e.setParcelID(parcelID),
		kind.Validate(),
		status.Validate(),
		e.setNotes(notes),
	); err != nil {
		return Entry{}, err
	}
	e.kind = kind
	e.status = status

	return e, nil
}

// RestoreEntry rebuilds a stored entry including its sequence number.
func RestoreEntry(
	sequence int64,
	parcelID kernel.UUID,
	kind Kind,
	status parcel.Status,
	courierID *kernel.UUID,
	notes string,
	location *kernel.Location,
	createdAt time.Time,
) (Entry, error) {
	e, err := NewEntry(parcelID, kind, status, courierID, notes, location, createdAt)
	if err != nil {
		return Entry{}, err
	}
	e.sequence = sequence
	return e, nil
}

// ForParcel builds the entry describing the current state of p after an
// operation of the given kind. The courier recorded is actor, which for a drop
// is the courier that let the parcel go.
func ForParcel(p *parcel.Parcel, kind Kind, actor *kernel.UUID, notes string) (Entry, error) {
	var location *kernel.Location
	if kind == KindLocationUpdated {
		location = p.Location()
	}
	return NewEntry(p.ID(), kind, p.Status(), actor, notes, location, p.UpdatedAt())
}

func (e Entry) Validate() error {
	if !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e Entry) Sequence() int64 {
	return e.sequence
}

func (e Entry) ParcelID() kernel.UUID {
	return e.parcelID
}

func (e Entry) Kind() Kind {
	return e.kind
}

func (e Entry) Status() parcel.Status {
	return e.status
}

func (e Entry) CourierID() *kernel.UUID {
	return e.courierID
}

func (e Entry) Notes() string {
	return e.notes
}

func (e Entry) Location() *kernel.Location {
	return e.location
}

func (e Entry) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Entry) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.parcelID = id
	return nil
}

func (e *Entry) setNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if len(notes) > NotesMaxLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"notes",
			fmt.Errorf("%d characters, at most %d allowed", len(notes), NotesMaxLength),
		)
	}
	e.notes = notes
	return nil
}
