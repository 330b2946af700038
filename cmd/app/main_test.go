package main

import (
	"log/slog"
	"testing"

	"parcelhub/cmd"
	"parcelhub/internal/core/application/notifications"
	"parcelhub/internal/core/application/readmodel"
	"parcelhub/internal/core/domain/model/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("should stop the dispatcher when the jobs fail to start", func(t *testing.T) {
		logger := slog.New(slog.DiscardHandler)
		app, err := cmd.NewCompositionRoot(t.Context(), cmd.Config{
			HTTPPort:                   "0",
			StorageDriver:              cmd.StorageDriverMemory,
			NotifyTransport:            cmd.NotifyTransportLog,
			NodeID:                     1,
			AvailableBroadcastSchedule: "not a schedule",
		}, logger)
		require.NoError(t, err)
		defer app.Close()

		err = run(t.Context(), app, "0", logger)

		require.ErrorContains(t, err, "available parcels broadcast")
		accepted := app.Dispatcher().Dispatch(notifications.Event{
			Kind:   history.KindCreated,
			Parcel: readmodel.ParcelView{ID: "p-1"},
		})
		assert.False(t, accepted, "a stopped dispatcher rejects events")
	})
}
