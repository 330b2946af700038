package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/courier"
	"parcelhub/internal/core/domain/model/kernel"
)

// CourierRepository persists Courier aggregates.
// Update is conditional on ExpectedVersion and ExpectedAvailable, like ParcelRepository.Update.
type CourierRepository interface {
	Add(ctx context.Context, c *courier.Courier) error
	Update(ctx context.Context, c *courier.Courier) error
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)
	GetByUsername(ctx context.Context, username string) (*courier.Courier, error)
}
