package historyrepo

import (
	"context"

	"parcelhub/internal/core/domain/model/history"
	"parcelhub/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormHistoryLog implements ports.HistoryLog. It only ever inserts.
type GormHistoryLog struct {
	db *gorm.DB
}

func NewGormHistoryLog(db *gorm.DB) *GormHistoryLog {
	return &GormHistoryLog{db: db}
}

func (l *GormHistoryLog) Append(ctx context.Context, entry history.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return l.db.WithContext(ctx).Create(&dto).Error
}

// ListByParcel returns the entries oldest first. Entries written at the same
// instant keep their insertion order.
func (l *GormHistoryLog) ListByParcel(ctx context.Context, parcelID kernel.UUID) ([]history.Entry, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	if err := l.db.WithContext(ctx).
		Where("parcel_id = ?", parcelID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]history.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
