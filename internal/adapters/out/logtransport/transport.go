// Package logtransport writes notifications to the structured log. It is the
// transport used when no broker is configured.
package logtransport

import (
	"context"
	"encoding/json"
	"log/slog"

	"parcelhub/internal/core/ports"
)

type Transport struct {
	logger *slog.Logger
}

func NewTransport(logger *slog.Logger) *Transport {
	return &Transport{logger: logger.With("component", "NotificationLog")}
}

func (t *Transport) Send(ctx context.Context, address ports.Address, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.logger.InfoContext(ctx, "notification",
		"address", address.String(),
		"payload", json.RawMessage(payload),
	)
	return nil
}
