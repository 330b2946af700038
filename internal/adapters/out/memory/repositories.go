package memory

import (
	"context"

	"parcelhub/internal/core/domain/model/courier"
	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"
)

type parcelRepository struct {
	uow *UnitOfWork
}

func (r *parcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	staged := stagedParcel{snapshot: p.Snapshot(), isNew: true}
	if err := r.uow.store.locked(func(s *Store) error { return s.checkParcel(staged) }); err != nil {
		return err
	}
	return r.uow.write(func(w *writes) {
		w.stageParcel(p.ID().String(), staged)
	})
}

// Update fails fast when the committed row already moved on, and Commit checks
// again, so a writer that commits in between is detected too.
func (r *parcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	id := p.ID().String()
	staged := stagedParcel{
		snapshot:        p.Snapshot(),
		expectedVersion: p.ExpectedVersion(),
		expectedStatus:  p.ExpectedStatus(),
	}
	if _, ok := r.uow.stagedParcel(id); !ok {
		if err := r.uow.store.locked(func(s *Store) error { return s.checkParcel(staged) }); err != nil {
			return err
		}
	}
	return r.uow.write(func(w *writes) {
		w.stageParcel(id, staged)
	})
}

func (r *parcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if staged, ok := r.uow.stagedParcel(id.String()); ok {
		return parcel.RestoreParcel(staged.snapshot)
	}

	snapshot, ok := r.uow.store.parcel(id.String())
	if !ok {
		return nil, errs.NewObjectNotFoundError("parcel", id)
	}
	return parcel.RestoreParcel(snapshot)
}

func (r *parcelRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*parcel.Parcel, error) {
	found, err := r.list(ctx, func(s parcel.Snapshot) bool {
		return s.TrackingNumber == trackingNumber
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, errs.NewObjectNotFoundError("tracking number", trackingNumber)
	}
	return found[0], nil
}

func (r *parcelRepository) ListByStatus(ctx context.Context, status parcel.Status) ([]*parcel.Parcel, error) {
	return r.list(ctx, func(s parcel.Snapshot) bool {
		return s.Status == status
	})
}

func (r *parcelRepository) ListActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*parcel.Parcel, error) {
	return r.list(ctx, func(s parcel.Snapshot) bool {
		return s.Status.IsActive() && s.CourierID != nil && s.CourierID.IsEqual(courierID)
	})
}

func (r *parcelRepository) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*parcel.Parcel, error) {
	return r.list(ctx, func(s parcel.Snapshot) bool {
		return s.CustomerID.IsEqual(customerID)
	})
}

// list reads committed rows only.
func (r *parcelRepository) list(ctx context.Context, match func(parcel.Snapshot) bool) ([]*parcel.Parcel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshots := r.uow.store.parcelWhere(match)
	parcels := make([]*parcel.Parcel, 0, len(snapshots))
	for _, snapshot := range snapshots {
		p, err := parcel.RestoreParcel(snapshot)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}

type courierRepository struct {
	uow *UnitOfWork
}

func (r *courierRepository) Add(ctx context.Context, c *courier.Courier) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}

	staged := stagedCourier{snapshot: c.Snapshot(), isNew: true}
	if err := r.uow.store.locked(func(s *Store) error { return s.checkCourier(staged) }); err != nil {
		return err
	}
	return r.uow.write(func(w *writes) {
		w.stageCourier(c.ID().String(), staged)
	})
}

func (r *courierRepository) Update(ctx context.Context, c *courier.Courier) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}

	id := c.ID().String()
	staged := stagedCourier{
		snapshot:          c.Snapshot(),
		expectedVersion:   c.ExpectedVersion(),
		expectedAvailable: c.ExpectedAvailable(),
	}
	if _, ok := r.uow.stagedCourier(id); !ok {
		if err := r.uow.store.locked(func(s *Store) error { return s.checkCourier(staged) }); err != nil {
			return err
		}
	}
	return r.uow.write(func(w *writes) {
		w.stageCourier(id, staged)
	})
}

func (r *courierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if staged, ok := r.uow.stagedCourier(id.String()); ok {
		return courier.RestoreCourier(staged.snapshot)
	}

	snapshot, ok := r.uow.store.courier(id.String())
	if !ok {
		return nil, errs.NewObjectNotFoundError("courier", id)
	}
	return courier.RestoreCourier(snapshot)
}

func (r *courierRepository) GetByUsername(ctx context.Context, username string) (*courier.Courier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pending := r.uow.pending; pending != nil {
		for _, id := range pending.courierOrder {
			if staged := pending.couriers[id]; staged.snapshot.Username == username {
				return courier.RestoreCourier(staged.snapshot)
			}
		}
	}

	snapshot, ok := r.uow.store.courierByUsername(username)
	if !ok {
		return nil, errs.NewObjectNotFoundError("courier", username)
	}
	return courier.RestoreCourier(snapshot)
}

type historyLog struct {
	uow *UnitOfWork
}

func (l *historyLog) Append(ctx context.Context, entry history.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	return l.uow.write(func(w *writes) {
		w.history = append(w.history, entry)
	})
}

func (l *historyLog) ListByParcel(ctx context.Context, parcelID kernel.UUID) ([]history.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.uow.store.entries(parcelID.String()), nil
}

func (u *UnitOfWork) stagedParcel(id string) (stagedParcel, bool) {
	if u.pending == nil {
		return stagedParcel{}, false
	}
	staged, ok := u.pending.parcels[id]
	return staged, ok
}

func (u *UnitOfWork) stagedCourier(id string) (stagedCourier, bool) {
	if u.pending == nil {
		return stagedCourier{}, false
	}
	staged, ok := u.pending.couriers[id]
	return staged, ok
}

func (s *Store) locked(check func(s *Store) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return check(s)
}
