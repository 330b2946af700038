// Package notifications fans committed parcel changes out to customers,
// couriers and the broadcast channel.
package notifications

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"parcelhub/internal/core/ports"
)

const (
	DefaultQueueSize   = 1024
	DefaultShards      = 8
	DefaultSendTimeout = 5 * time.Second
)

// Config sizes the dispatcher. Zero values fall back to the defaults.
type Config struct {
	QueueSize   int
	Shards      int
	SendTimeout time.Duration
}

// Dispatcher delivers events asynchronously.
//
// Events are partitioned by parcel id into shards. Each shard is a bounded
// channel drained by a single goroutine, so events of one parcel reach each
// recipient in the order they were enqueued. Dispatch never blocks: when a
// shard is full the event is logged and dropped. Transport errors are logged
// and dropped too; they never reach the operation that produced the event.
//
// Example:
//
//	d := notifications.NewDispatcher(transport, logger, notifications.Config{})
//	d.Start(ctx)
//	defer d.Stop(shutdownCtx)
//
//	err := d.CommitAndDispatch(func() error { return uow.Commit(ctx) }, event)
type Dispatcher struct {
	transport   ports.NotificationTransport
	logger      *slog.Logger
	sendTimeout time.Duration

	shards []chan Event
	locks  []sync.Mutex

	mu      sync.RWMutex
	started bool
	stopped bool
	wg      sync.WaitGroup
}

func NewDispatcher(transport ports.NotificationTransport, logger *slog.Logger, cfg Config) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Shards <= 0 {
		cfg.Shards = DefaultShards
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultSendTimeout
	}

	perShard := cfg.QueueSize / cfg.Shards
	if perShard < 1 {
		perShard = 1
	}

	shards := make([]chan Event, cfg.Shards)
	for i := range shards {
		shards[i] = make(chan Event, perShard)
	}

	return &Dispatcher{
		transport:   transport,
		logger:      logger.With("component", "NotificationDispatcher"),
		sendTimeout: cfg.SendTimeout,
		shards:      shards,
		locks:       make([]sync.Mutex, cfg.Shards),
	}
}

// Start launches one worker per shard. Sends derive their context from ctx.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true

	for i, queue := range d.shards {
		d.wg.Add(1)
		go d.run(ctx, i, queue)
	}
	d.logger.InfoContext(ctx, "notification dispatcher started", "shards", len(d.shards))
}

// Stop rejects new events, lets the workers drain what is queued and waits
// for them until ctx is done.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	for _, queue := range d.shards {
		close(queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatch enqueues e without blocking and reports whether it was accepted.
func (d *Dispatcher) Dispatch(e Event) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		d.logger.Warn("notification dropped, dispatcher stopped",
			"parcel_id", e.Parcel.ID, "kind", e.Kind)
		return false
	}

	select {
	case d.shards[d.shardOf(e.Parcel.ID)] <- e:
		return true
	default:
		d.logger.Warn("notification dropped, queue is full",
			"parcel_id", e.Parcel.ID, "kind", e.Kind)
		return false
	}
}

// CommitAndDispatch runs commit and, if it succeeds, enqueues e before any
// other commit for the same parcel in this process can enqueue its event.
// The lock is held only around commit and enqueue. The commit error is returned
// unchanged; a dropped event is not an error.
func (d *Dispatcher) CommitAndDispatch(commit func() error, e Event) error {
	lock := &d.locks[d.shardOf(e.Parcel.ID)]
	lock.Lock()
	defer lock.Unlock()

	if err := commit(); err != nil {
		return err
	}
	d.Dispatch(e)
	return nil
}

func (d *Dispatcher) run(ctx context.Context, shard int, queue <-chan Event) {
	defer d.wg.Done()
	for e := range queue {
		d.deliver(ctx, e)
	}
	d.logger.DebugContext(ctx, "notification worker stopped", "shard", shard)
}

func (d *Dispatcher) deliver(ctx context.Context, e Event) {
	payload, err := json.Marshal(NewPayload(e))
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to encode notification",
			"parcel_id", e.Parcel.ID, "kind", e.Kind, "error", err)
		return
	}

	for _, address := range Addresses(e) {
		sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
		err = d.transport.Send(sendCtx, address, payload)
		cancel()
		if err != nil {
			d.logger.ErrorContext(ctx, "failed to send notification",
				"parcel_id", e.Parcel.ID, "kind", e.Kind, "address", address.String(), "error", err)
		}
	}
}

func (d *Dispatcher) shardOf(parcelID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(parcelID))
	return int(h.Sum32() % uint32(len(d.shards)))
}
