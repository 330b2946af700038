package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parcelhub/internal/core/application/notifications"
	"parcelhub/internal/core/application/readmodel"
	"parcelhub/internal/core/domain/model/courier"
	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

var (
	ErrParcelNotFound  = errors.New("parcel not found")
	ErrCourierNotFound = errors.New("courier not found")
)

const (
	DefaultStorageTimeout = 5 * time.Second
	DefaultMaxRetries     = 3
	DefaultRetryInterval  = 20 * time.Millisecond
)

// CoordinatorConfig tunes storage timeouts and conflict retries.
// Zero values fall back to the defaults.
type CoordinatorConfig struct {
	StorageTimeout time.Duration
	MaxRetries     uint64
	RetryInterval  time.Duration
}

// Coordinator runs parcel operations as atomic units of work.
//
// Each attempt loads the parcel, applies the operation, writes the parcel,
// courier and history entry through conditional updates and commits. When a
// conditional update loses against a concurrent writer (errs.ErrVersionIsInvalid)
// the whole attempt is retried from a fresh read, so the operation is
// re-validated against the winner's state. Every other error is final.
//
// Example:
//
//	coordinator := commands.NewCoordinator(uowFactory, dispatcher, redisCache, logger, commands.CoordinatorConfig{})
//	handler := commands.NewTakeParcelCommandHandler(coordinator)
//	p, err := handler.Handle(ctx, cmd)
type Coordinator struct {
	uowFactory UoWFactory
	notifier   Notifier
	cache      CacheInvalidator
	logger     *slog.Logger
	now        func() time.Time

	storageTimeout time.Duration
	maxRetries     uint64
	retryInterval  time.Duration
}

func NewCoordinator(
	uowFactory UoWFactory,
	notifier Notifier,
	cache CacheInvalidator,
	logger *slog.Logger,
	cfg CoordinatorConfig,
) *Coordinator {
	if cfg.StorageTimeout <= 0 {
		cfg.StorageTimeout = DefaultStorageTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}

	return &Coordinator{
		uowFactory:     uowFactory,
		notifier:       notifier,
		cache:          cache,
		logger:         logger.With("component", "AssignmentCoordinator"),
		now:            func() time.Time { return time.Now().UTC() },
		storageTimeout: cfg.StorageTimeout,
		maxRetries:     cfg.MaxRetries,
		retryInterval:  cfg.RetryInterval,
	}
}

// WithClock replaces the time source. Used by tests.
func (c *Coordinator) WithClock(now func() time.Time) *Coordinator {
	c.now = now
	return c
}

// change describes what an operation did, for the history log and the event.
type change struct {
	kind  history.Kind
	actor *kernel.UUID
	notes string
}

// operation mutates p (and possibly a courier) inside tx.
type operation func(ctx context.Context, tx UoW, p *parcel.Parcel, now time.Time) (change, error)

func (c *Coordinator) mutate(ctx context.Context, name string, parcelID kernel.UUID, op operation) (*parcel.Parcel, error) {
	var result *parcel.Parcel
	attempts := 0

	err := backoff.Retry(func() error {
		attempts++
		p, err := c.attempt(ctx, parcelID, op)
		if err == nil {
			result = p
			return nil
		}
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			c.logger.DebugContext(ctx, "conditional write lost, retrying",
				"operation", name, "parcel_id", parcelID.String(), "attempt", attempts)
			return err
		}
		return backoff.Permanent(err)
	}, c.retryPolicy(ctx))
	if err != nil {
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			c.logger.WarnContext(ctx, "operation gave up after repeated conflicts",
				"operation", name, "parcel_id", parcelID.String(), "attempts", attempts)
		}
		return nil, err
	}

	c.logger.InfoContext(ctx, "parcel updated",
		"operation", name, "parcel_id", parcelID.String(), "status", result.Status().String())
	return result, nil
}

func (c *Coordinator) attempt(ctx context.Context, parcelID kernel.UUID, op operation) (*parcel.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, c.storageTimeout)
	defer cancel()

	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := uow.ParcelRepository().Get(ctx, parcelID)
	if err != nil {
		return nil, notFound(err, ErrParcelNotFound)
	}
	previousCourier := p.CourierID()

	done, err := op(ctx, uow, p, c.now())
	if err != nil {
		return nil, err
	}

	if err = uow.ParcelRepository().Update(ctx, p); err != nil {
		return nil, err
	}

	if err = c.commit(ctx, uow, p, done); err != nil {
		return nil, err
	}

	c.invalidate(ctx, readmodel.InvalidationKeys(p, previousCourier))
	return p, nil
}

// commit appends the history entry for done and commits uow, handing the
// event to the notifier.
func (c *Coordinator) commit(ctx context.Context, uow UoW, p *parcel.Parcel, done change) error {
	entry, err := history.ForParcel(p, done.kind, done.actor, done.notes)
	if err != nil {
		return err
	}
	if err = uow.HistoryLog().Append(ctx, entry); err != nil {
		return err
	}

	event := notifications.Event{
		Kind:       done.kind,
		Parcel:     readmodel.NewParcelView(p),
		OccurredAt: p.UpdatedAt(),
	}
	return c.notifier.CommitAndDispatch(func() error {
		return uow.Commit(ctx)
	}, event)
}

// invalidate is best effort. A stale entry expires with its TTL.
func (c *Coordinator) invalidate(ctx context.Context, keys []string) {
	if err := c.cache.Delete(ctx, keys...); err != nil {
		c.logger.WarnContext(ctx, "cache invalidation failed", "keys", keys, "error", err)
	}
}

func (c *Coordinator) retryPolicy(ctx context.Context) backoff.BackOffContext {
	return backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryInterval), c.maxRetries),
		ctx,
	)
}

// courierByUsername loads the acting courier inside tx.
func courierByUsername(ctx context.Context, tx UoW, username string) (*courier.Courier, error) {
	found, err := tx.CourierRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, ErrCourierNotFound)
	}
	return found, nil
}

// notFound replaces a store miss by the operation-level sentinel, keeping both matchable.
func notFound(err error, sentinel error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
