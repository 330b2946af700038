// Package parcel contains the Parcel aggregate and its lifecycle state machine.
//
// Transition is the pure status transition function: it is total over every
// pair of Status values and has no side effects. Parcel methods combine it
// with ownership checks (courier for Take, Drop, ChangeStatus and
// UpdateLocation; customer for Cancel) and with the once-only transition
// timestamps.
//
// Rejections are expected outcomes and are returned as sentinel errors:
// ErrInvalidTransition, ErrAlreadyAssigned, ErrNotAssignedToCourier,
// ErrNotOwnedByCustomer and ErrPreconditionFailed.
package parcel
