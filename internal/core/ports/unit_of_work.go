package ports

import "context"

// Repositories gives access to the stores. Outside of a transaction the
// repositories read committed state, which is what query handlers use.
type Repositories interface {
	ParcelRepository() ParcelRepository
	CourierRepository() CourierRepository
	HistoryLog() HistoryLog
}

// UnitOfWork groups repository writes into one atomic transaction.
//
// Example:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	// ... repository calls
//
//	return uow.Commit(ctx)
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Repositories
}

// UnitOfWorkFactory creates independent units of work.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
