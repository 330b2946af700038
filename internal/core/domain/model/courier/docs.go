// Package courier contains the Courier aggregate: identity, availability and
// last known location of the people who carry parcels.
package courier
