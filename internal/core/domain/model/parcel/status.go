package parcel

import (
	"errors"
	"fmt"
	"strings"

	"parcelhub/internal/pkg/errs"
)

// ErrInvalidTransition is the rejection returned by Transition for any edge
// outside the lifecycle table.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status is the lifecycle state of a parcel.
//
// State transitions:
//
//	Pending ──> Assigned ──> PickedUp ──> InTransit ──> Delivered
//	   │           │            │            │
//	   └───────────┴────────────┴────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal. Going back from Assigned (or later)
// to Pending happens only through Parcel.Drop, never through Transition.
//
// At the boundary a Status travels as an upper snake case string
// ("PENDING", "PICKED_UP", ...), see String and ParseStatus.
type Status int

const (
	// Unknown is the zero value and never a valid state.
	Unknown Status = iota
	Pending
	Assigned
	PickedUp
	InTransit
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Assigned:  "ASSIGNED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// getAllowedTransitions lists, per state, every state Transition accepts.
// Terminal states map to nothing.
func getAllowedTransitions() map[Status][]Status {
	//nolint:exhaustive // Unknown, Delivered and Cancelled have no outgoing edges
	return map[Status][]Status{
		Pending:   {Assigned, Cancelled},
		Assigned:  {PickedUp, Cancelled},
		PickedUp:  {InTransit, Cancelled},
		InTransit: {Delivered, Cancelled},
	}
}

// Statuses returns the six valid states in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Assigned, PickedUp, InTransit, Delivered, Cancelled}
}

// ParseStatus converts a boundary string into a Status.
// Matching ignores case and surrounding whitespace. "UNKNOWN" is rejected.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate reports whether s is one of the six lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper snake case name, or "UNKNOWN" for values outside the set.
func (s Status) String() string {
	if name, ok := getStatusStrings()[s]; ok {
		return name
	}
	return getStatusStrings()[Unknown]
}

// IsTerminal is true for Delivered and Cancelled.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActive is true while a courier is working on the parcel.
func (s Status) IsActive() bool {
	return s == Assigned || s == PickedUp || s == InTransit
}

// InvalidTransitionError carries the rejected edge. It unwraps to ErrInvalidTransition.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Transition validates moving from current to requested and returns the new state.
//
// It is a pure function defined for every pair of Status values: allowed
// forward and cancel edges return requested, everything else (skips,
// backward edges, edges out of a terminal state, self loops, Unknown on
// either side) returns an *InvalidTransitionError.
//
// Example:
//
//	next, err := parcel.Transition(parcel.PickedUp, parcel.InTransit)
//	// next == parcel.InTransit, err == nil
//
//	_, err = parcel.Transition(parcel.Delivered, parcel.PickedUp)
//	// errors.Is(err, parcel.ErrInvalidTransition) == true
func Transition(current, requested Status) (Status, error) {
	for _, allowed := range getAllowedTransitions()[current] {
		if allowed == requested {
			return requested, nil
		}
	}
	return current, &InvalidTransitionError{From: current, To: requested}
}
