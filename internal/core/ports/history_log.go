package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/kernel"
)

// HistoryLog is the append-only tracking log. Append is its only mutator.
// ListByParcel returns entries by ascending CreatedAt, ties by Sequence.
type HistoryLog interface {
	Append(ctx context.Context, entry history.Entry) error
	ListByParcel(ctx context.Context, parcelID kernel.UUID) ([]history.Entry, error)
}
