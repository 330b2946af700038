package notifications_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"parcelhub/internal/core/application/notifications"
	"parcelhub/internal/core/application/readmodel"
	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	address ports.Address
	payload notifications.Payload
}

type recordingTransport struct {
	mu      sync.Mutex
	sent    []sent
	failFor ports.AddressKind
	block   chan struct{}
	entered chan struct{}
}

func (r *recordingTransport) Send(_ context.Context, address ports.Address, payload []byte) error {
	if r.entered != nil {
		select {
		case r.entered <- struct{}{}:
		default:
		}
	}
	if r.block != nil {
		<-r.block
	}

	var p notifications.Payload
	if err := json.Unmarshal(payload, &p); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sent{address: address, payload: p})
	if address.Kind == r.failFor {
		return errors.New("transport down")
	}
	return nil
}

func (r *recordingTransport) snapshot() []sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sent(nil), r.sent...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func event(parcelID, status string, courierID *string, kind history.Kind) notifications.Event {
	return notifications.Event{
		Kind: kind,
		Parcel: readmodel.ParcelView{
			ID:         parcelID,
			CustomerID: "cust-1",
			CourierID:  courierID,
			Status:     status,
		},
		OccurredAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func stopAndWait(t *testing.T, d *notifications.Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))
}

func TestDispatcher_FansOutToAllRecipients(t *testing.T) {
	transport := &recordingTransport{}
	d := notifications.NewDispatcher(transport, discardLogger(), notifications.Config{})
	d.Start(t.Context())

	courierID := "courier-9"
	require.True(t, d.Dispatch(event("p-1", "ASSIGNED", &courierID, history.KindAssigned)))
	stopAndWait(t, d)

	got := transport.snapshot()
	require.Len(t, got, 3)
	assert.Equal(t, "customer/cust-1", got[0].address.String())
	assert.Equal(t, "courier/courier-9", got[1].address.String())
	assert.Equal(t, "broadcast", got[2].address.String())

	payload := got[0].payload
	assert.Equal(t, "p-1", payload.PackageID)
	assert.Equal(t, "ASSIGNED", payload.Kind)
	assert.Equal(t, "ASSIGNED", payload.Status)
	require.NotNil(t, payload.CourierID)
	assert.Equal(t, "courier-9", *payload.CourierID)
	require.NotNil(t, payload.CustomerID)
	assert.Equal(t, "cust-1", *payload.CustomerID)
}

func TestDispatcher_SkipsCourierAddressWithoutCourier(t *testing.T) {
	transport := &recordingTransport{}
	d := notifications.NewDispatcher(transport, discardLogger(), notifications.Config{})
	d.Start(t.Context())

	require.True(t, d.Dispatch(event("p-1", "PENDING", nil, history.KindDropped)))
	stopAndWait(t, d)

	got := transport.snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, ports.AddressCustomer, got[0].address.Kind)
	assert.Equal(t, ports.AddressBroadcast, got[1].address.Kind)
}

func TestDispatcher_PreservesOrderPerParcel(t *testing.T) {
	transport := &recordingTransport{}
	d := notifications.NewDispatcher(transport, discardLogger(), notifications.Config{QueueSize: 512, Shards: 4})
	d.Start(t.Context())

	statuses := []string{"ASSIGNED", "PICKED_UP", "IN_TRANSIT", "DELIVERED"}
	for round := 0; round < 20; round++ {
		for _, s := range statuses {
			require.True(t, d.Dispatch(event("p-ordered", s, nil, history.KindStatusChanged)))
			require.True(t, d.Dispatch(event("p-other", s, nil, history.KindStatusChanged)))
		}
	}
	stopAndWait(t, d)

	var customerStatuses []string
	for _, s := range transport.snapshot() {
		if s.payload.PackageID == "p-ordered" && s.address.Kind == ports.AddressCustomer {
			customerStatuses = append(customerStatuses, s.payload.Status)
		}
	}
	require.Len(t, customerStatuses, 80)
	for i, s := range customerStatuses {
		assert.Equal(t, statuses[i%len(statuses)], s, "position %d", i)
	}
}

func TestDispatcher_TransportFailureDoesNotStopDelivery(t *testing.T) {
	transport := &recordingTransport{failFor: ports.AddressCustomer}
	d := notifications.NewDispatcher(transport, discardLogger(), notifications.Config{})
	d.Start(t.Context())

	require.True(t, d.Dispatch(event("p-1", "ASSIGNED", nil, history.KindAssigned)))
	require.True(t, d.Dispatch(event("p-1", "PICKED_UP", nil, history.KindStatusChanged)))
	stopAndWait(t, d)

	assert.Len(t, transport.snapshot(), 4)
}

func TestDispatcher_DropsWhenQueueIsFull(t *testing.T) {
	transport := &recordingTransport{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	d := notifications.NewDispatcher(transport, discardLogger(), notifications.Config{QueueSize: 1, Shards: 1})
	d.Start(t.Context())

	require.True(t, d.Dispatch(event("p-1", "ASSIGNED", nil, history.KindAssigned)))
	select {
	case <-transport.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("worker never picked up the first event")
	}

	assert.True(t, d.Dispatch(event("p-1", "PICKED_UP", nil, history.KindStatusChanged)), "buffer has one free slot")
	assert.False(t, d.Dispatch(event("p-1", "IN_TRANSIT", nil, history.KindStatusChanged)), "buffer is full")

	close(transport.block)
	stopAndWait(t, d)
	assert.Len(t, transport.snapshot(), 4)
}

func TestDispatcher_CommitAndDispatch(t *testing.T) {
	t.Run("should not dispatch when commit fails", func(t *testing.T) {
		transport := &recordingTransport{}
		d := notifications.NewDispatcher(transport, discardLogger(), notifications.Config{})
		d.Start(t.Context())
		commitErr := errors.New("serialization failure")

		err := d.CommitAndDispatch(func() error { return commitErr }, event("p-1", "ASSIGNED", nil, history.KindAssigned))

		require.ErrorIs(t, err, commitErr)
		stopAndWait(t, d)
		assert.Empty(t, transport.snapshot())
	})

	t.Run("should dispatch after successful commit", func(t *testing.T) {
		transport := &recordingTransport{}
		d := notifications.NewDispatcher(transport, discardLogger(), notifications.Config{})
		d.Start(t.Context())
		committed := false

		err := d.CommitAndDispatch(func() error {
			committed = true
			return nil
		}, event("p-1", "ASSIGNED", nil, history.KindAssigned))

		require.NoError(t, err)
		assert.True(t, committed)
		stopAndWait(t, d)
		assert.Len(t, transport.snapshot(), 2)
	})
}

func TestDispatcher_RejectsAfterStop(t *testing.T) {
	d := notifications.NewDispatcher(&recordingTransport{}, discardLogger(), notifications.Config{})
	d.Start(t.Context())
	stopAndWait(t, d)

	assert.False(t, d.Dispatch(event("p-1", "ASSIGNED", nil, history.KindAssigned)))
	require.NoError(t, d.Stop(context.Background()), "second stop is a no-op")
}
