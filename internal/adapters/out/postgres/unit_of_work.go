// Package postgres implements the unit of work over GORM transactions.
//
// Every repository handed out by a GormUnitOfWork runs inside the unit's
// transaction once Begin has been called. Before that, and after Commit or
// Rollback, the repositories read committed state through the plain
// connection, which is how the query side uses them.
//
// Example:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.ParcelRepository().Update(ctx, p); err != nil {
//	    return err
//	}
//	if err := uow.HistoryLog().Append(ctx, entry); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Conditional updates make concurrent writers safe under the default READ
// COMMITTED isolation: the second UPDATE of a row waits for the first
// transaction, re-checks its WHERE clause and matches nothing.
package postgres

import (
	"context"

	"parcelhub/internal/adapters/out/postgres/courierrepo"
	"parcelhub/internal/adapters/out/postgres/historyrepo"
	"parcelhub/internal/adapters/out/postgres/parcelrepo"
	"parcelhub/internal/core/ports"

	"gorm.io/gorm"
)

// Migrate creates or updates the parcels, couriers and parcel_history tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&parcelrepo.ParcelDTO{}, &courierrepo.CourierDTO{}, &historyrepo.EntryDTO{})
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work. Units must not be shared between goroutines.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork wraps one GORM transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling it again while a transaction is open
// does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the open transaction. After Commit it is a no-op, so it
// can always be deferred.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn())
}

func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn())
}

func (uow *GormUnitOfWork) HistoryLog() ports.HistoryLog {
	return historyrepo.NewGormHistoryLog(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
