package logtransport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"parcelhub/internal/adapters/out/logtransport"
	"parcelhub/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransport_Send(t *testing.T) {
	t.Run("should log address and payload as json", func(t *testing.T) {
		var buf bytes.Buffer
		tr := logtransport.NewTransport(slog.New(slog.NewJSONHandler(&buf, nil)))

		require.NoError(t, tr.Send(t.Context(), ports.CustomerAddress("c-1"), []byte(`{"kind":"CREATED"}`)))

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "notification", line["msg"])
		assert.Equal(t, "customer/c-1", line["address"])
		assert.Equal(t, "NotificationLog", line["component"])
		assert.Equal(t, map[string]any{"kind": "CREATED"}, line["payload"])
	})

	t.Run("should refuse a cancelled context", func(t *testing.T) {
		tr := logtransport.NewTransport(slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)))
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		assert.ErrorIs(t, tr.Send(ctx, ports.BroadcastAddress(), []byte(`{}`)), context.Canceled)
	})
}
