package commands_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"parcelhub/internal/core/application/notifications"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/courier"
	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*parcel.Parcel, error) {
	args := m.Called(ctx, trackingNumber)
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) ListByStatus(ctx context.Context, status parcel.Status) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) ListActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, courierID)
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetByUsername(ctx context.Context, username string) (*courier.Courier, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(*courier.Courier), args.Error(1)
}

type MockHistoryLog struct{ mock.Mock }

func (m *MockHistoryLog) Append(ctx context.Context, entry history.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryLog) ListByParcel(ctx context.Context, parcelID kernel.UUID) ([]history.Entry, error) {
	args := m.Called(ctx, parcelID)
	return args.Get(0).([]history.Entry), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) HistoryLog() ports.HistoryLog {
	args := m.Called()
	return args.Get(0).(ports.HistoryLog)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCourierUoW struct{ mock.Mock }

func (m *MockCourierUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCourierUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCourierUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCourierUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

// MockNotifier runs the commit like the dispatcher does and records the
// event only when the commit succeeded.
type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) CommitAndDispatch(commit func() error, e notifications.Event) error {
	if err := commit(); err != nil {
		return err
	}
	args := m.Called(e)
	return args.Error(0)
}

type MockCache struct{ mock.Mock }

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// recordingNotifier commits and keeps the events, for tests against the memory store.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notifications.Event
}

func (r *recordingNotifier) CommitAndDispatch(commit func() error, e notifications.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := commit(); err != nil {
		return err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *recordingNotifier) kinds() []history.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]history.Kind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

type fixedTrackingNumbers struct {
	mu   sync.Mutex
	next int
}

func (f *fixedTrackingNumbers) Next() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return fmt.Sprintf("PKG-TEST-%03d", f.next)
}

var testNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func testDetails() parcel.Details {
	return parcel.Details{
		PickupAddress:   "Abay 10",
		DeliveryAddress: "Dostyk 5",
		WeightKg:        2.5,
		Description:     "books",
	}
}

func newPendingParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	p, err := parcel.RestoreParcel(parcel.Snapshot{
		ID:             kernel.NewUUID(),
		TrackingNumber: "PKG-1",
		CustomerID:     kernel.NewUUID(),
		Details:        testDetails(),
		Status:         parcel.Pending,
		CreatedAt:      testNow,
		UpdatedAt:      testNow,
		Version:        1,
	})
	require.NoError(t, err)
	return p
}

func restoreParcel(t *testing.T, from *parcel.Parcel, status parcel.Status, courierID *kernel.UUID) *parcel.Parcel {
	t.Helper()
	snapshot := from.Snapshot()
	snapshot.Status = status
	snapshot.CourierID = courierID
	snapshot.Version++
	p, err := parcel.RestoreParcel(snapshot)
	require.NoError(t, err)
	return p
}

func newTestCourier(t *testing.T, username string, available bool) *courier.Courier {
	t.Helper()
	c, err := courier.RestoreCourier(courier.Snapshot{
		ID:        kernel.NewUUID(),
		Username:  username,
		Available: available,
		Version:   1,
	})
	require.NoError(t, err)
	return c
}
