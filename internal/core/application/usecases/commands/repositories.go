// Package commands contains the operations that change parcels and couriers.
// Every command is validated by its constructor, then executed by a handler as
// one unit of work. Committed parcel changes are handed to the notifier and the
// affected cache keys are invalidated.
package commands

import (
	"context"

	"parcelhub/internal/core/application/notifications"
	"parcelhub/internal/core/ports"
)

// Unit of Work interfaces give handlers transactional access to the stores.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	HistoryLogFactory interface {
		HistoryLog() ports.HistoryLog
	}

	// CourierUoW is enough for operations that only touch couriers.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW spans parcels, couriers and the history log. Parcel operations use
	// it so the parcel row, the courier flag and the history entry commit together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   p, err := uow.ParcelRepository().Get(ctx, id)
	//   // ... mutate, Update, Append
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ParcelRepoFactory
		CourierRepoFactory
		HistoryLogFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// Notifier commits a unit of work and enqueues the resulting event so that
// events of one parcel are enqueued in commit order.
type Notifier interface {
	CommitAndDispatch(commit func() error, e notifications.Event) error
}

// CacheInvalidator drops cached reads made stale by a commit.
type CacheInvalidator interface {
	Delete(ctx context.Context, keys ...string) error
}
