package memory

import (
	"context"
	"errors"
	"fmt"

	"parcelhub/internal/core/domain/model/courier"
	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

var ErrTransactionNotStarted = errors.New("transaction is not started")

type stagedParcel struct {
	snapshot        parcel.Snapshot
	isNew           bool
	expectedVersion int64
	expectedStatus  parcel.Status
}

type stagedCourier struct {
	snapshot          courier.Snapshot
	isNew             bool
	expectedVersion   int64
	expectedAvailable bool
}

// writes is the pending change set of one unit of work.
type writes struct {
	parcels      map[string]stagedParcel
	parcelOrder  []string
	couriers     map[string]stagedCourier
	courierOrder []string
	history      []history.Entry
}

func newWrites() *writes {
	return &writes{
		parcels:  make(map[string]stagedParcel),
		couriers: make(map[string]stagedCourier),
	}
}

func (w *writes) stageParcel(id string, staged stagedParcel) {
	if previous, ok := w.parcels[id]; ok {
		// a second write in the same unit keeps the first expectation
		staged.isNew = previous.isNew
		staged.expectedVersion = previous.expectedVersion
		staged.expectedStatus = previous.expectedStatus
	} else {
		w.parcelOrder = append(w.parcelOrder, id)
	}
	w.parcels[id] = staged
}

func (w *writes) stageCourier(id string, staged stagedCourier) {
	if previous, ok := w.couriers[id]; ok {
		staged.isNew = previous.isNew
		staged.expectedVersion = previous.expectedVersion
		staged.expectedAvailable = previous.expectedAvailable
	} else {
		w.courierOrder = append(w.courierOrder, id)
	}
	w.couriers[id] = staged
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return NewUnitOfWork(f.store)
}

// UnitOfWork stages writes between Begin and Commit. Without Begin every
// write is committed on its own, which is what query handlers and tests
// seeding data rely on.
type UnitOfWork struct {
	store   *Store
	pending *writes
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.pending == nil {
		u.pending = newWrites()
	}
	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.pending == nil {
		return ErrTransactionNotStarted
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	pending := u.pending
	u.pending = nil
	return u.store.apply(pending)
}

// Rollback discards staged writes. It is a no-op after Commit.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	u.pending = nil
	return nil
}

func (u *UnitOfWork) ParcelRepository() ports.ParcelRepository {
	return &parcelRepository{uow: u}
}

func (u *UnitOfWork) CourierRepository() ports.CourierRepository {
	return &courierRepository{uow: u}
}

func (u *UnitOfWork) HistoryLog() ports.HistoryLog {
	return &historyLog{uow: u}
}

// write stages w in the open transaction or applies it right away.
func (u *UnitOfWork) write(stage func(w *writes)) error {
	if u.pending != nil {
		stage(u.pending)
		return nil
	}
	w := newWrites()
	stage(w)
	return u.store.apply(w)
}

func (s *Store) checkParcel(staged stagedParcel) error {
	id := staged.snapshot.ID.String()
	current, exists := s.parcels[id]
	if staged.isNew {
		if exists {
			return fmt.Errorf("parcel %s: %w", id, errs.ErrObjectExists)
		}
		for _, other := range s.parcels {
			if other.TrackingNumber == staged.snapshot.TrackingNumber {
				return fmt.Errorf("tracking number %s: %w", other.TrackingNumber, errs.ErrObjectExists)
			}
		}
		return nil
	}
	if !exists {
		return errs.NewObjectNotFoundError("parcel", id)
	}
	if current.Version != staged.expectedVersion || current.Status != staged.expectedStatus {
		return errs.NewVersionIsInvalidError("parcel")
	}
	return nil
}

func (s *Store) checkCourier(staged stagedCourier) error {
	id := staged.snapshot.ID.String()
	current, exists := s.couriers[id]
	if staged.isNew {
		if exists {
			return fmt.Errorf("courier %s: %w", id, errs.ErrObjectExists)
		}
		for _, other := range s.couriers {
			if other.Username == staged.snapshot.Username {
				return fmt.Errorf("courier username %s: %w", other.Username, errs.ErrObjectExists)
			}
		}
		return nil
	}
	if !exists {
		return errs.NewObjectNotFoundError("courier", id)
	}
	if current.Version != staged.expectedVersion || current.Available != staged.expectedAvailable {
		return errs.NewVersionIsInvalidError("courier")
	}
	return nil
}
