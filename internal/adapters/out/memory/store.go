// Package memory is an in-process store with the same conditional-write
// contract as the postgres adapter. It backs the "memory" storage driver and
// the coordinator tests.
//
// A unit of work stages its writes. Commit takes the store lock, re-checks
// the expected version (and status or availability) of every staged update
// against the committed rows and applies everything, or nothing when one
// check fails. A failed check is reported as errs.ErrVersionIsInvalid, like
// an UPDATE that affected no rows.
package memory

import (
	"slices"
	"strings"
	"sync"

	"parcelhub/internal/core/domain/model/courier"
	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/parcel"
)

// Store holds committed state. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	parcels  map[string]parcel.Snapshot
	couriers map[string]courier.Snapshot
	history  []history.Entry
	sequence int64
}

func NewStore() *Store {
	return &Store{
		parcels:  make(map[string]parcel.Snapshot),
		couriers: make(map[string]courier.Snapshot),
	}
}

func (s *Store) parcel(id string) (parcel.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.parcels[id]
	return snapshot, ok
}

func (s *Store) parcelWhere(match func(parcel.Snapshot) bool) []parcel.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []parcel.Snapshot
	for _, snapshot := range s.parcels {
		if match(snapshot) {
			found = append(found, snapshot)
		}
	}
	slices.SortFunc(found, func(a, b parcel.Snapshot) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return found
}

func (s *Store) courier(id string) (courier.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.couriers[id]
	return snapshot, ok
}

func (s *Store) courierByUsername(username string) (courier.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, snapshot := range s.couriers {
		if snapshot.Username == username {
			return snapshot, true
		}
	}
	return courier.Snapshot{}, false
}

func (s *Store) entries(parcelID string) []history.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []history.Entry
	for _, e := range s.history {
		if e.ParcelID().String() == parcelID {
			found = append(found, e)
		}
	}
	slices.SortStableFunc(found, func(a, b history.Entry) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		switch {
		case a.Sequence() < b.Sequence():
			return -1
		case a.Sequence() > b.Sequence():
			return 1
		}
		return 0
	})
	return found
}

// apply checks every staged write against committed state and applies them
// all under one lock.
func (s *Store) apply(w *writes) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(w); err != nil {
		return err
	}

	appended := make([]history.Entry, 0, len(w.history))
	for i, e := range w.history {
		stored, err := history.RestoreEntry(
			s.sequence+int64(i)+1,
			e.ParcelID(), e.Kind(), e.Status(), e.CourierID(), e.Notes(), e.Location(), e.CreatedAt(),
		)
		if err != nil {
			return err
		}
		appended = append(appended, stored)
	}

	for _, id := range w.parcelOrder {
		s.parcels[id] = w.parcels[id].snapshot
	}
	for _, id := range w.courierOrder {
		s.couriers[id] = w.couriers[id].snapshot
	}
	s.history = append(s.history, appended...)
	s.sequence += int64(len(appended))
	return nil
}

func (s *Store) check(w *writes) error {
	for _, id := range w.parcelOrder {
		staged := w.parcels[id]
		if err := s.checkParcel(staged); err != nil {
			return err
		}
	}
	for _, id := range w.courierOrder {
		staged := w.couriers[id]
		if err := s.checkCourier(staged); err != nil {
			return err
		}
	}
	return nil
}
