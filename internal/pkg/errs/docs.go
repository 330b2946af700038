// Package errs holds the typed errors shared by the domain, the use cases and
// the storage adapters.
//
// Every type wraps a sentinel so callers match with errors.Is:
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange: rejected input, mapped to 400
//   - ErrObjectNotFound: a missing parcel, courier or history, mapped to 404
//   - ErrObjectExists: a duplicate username or tracking number
//   - ErrVersionIsInvalid: a conditional write that matched no row
//
// Constructors come in pairs, with and without a cause. The cause is kept
// for Unwrap so a driver error stays reachable.
package errs
