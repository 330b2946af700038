package parcelrepo

import (
	"context"
	"errors"
	"fmt"

	"parcelhub/internal/adapters/out/postgres/pgtypes"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db *gorm.DB
}

// NewGormParcelRepository creates a repository bound to db, which may be a transaction.
func NewGormParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

func (r *GormParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgtypes.IsUniqueViolation(err) {
			return fmt.Errorf("%w: parcel %s", errs.ErrObjectExists, p.TrackingNumber())
		}
		return err
	}
	return nil
}

// Update is a compare-and-set on (version, status). When another writer got
// there first no row matches and errs.ErrVersionIsInvalid is returned.
func (r *GormParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND version = ? AND status = ?", dto.ID, p.ExpectedVersion(), p.ExpectedStatus().String()).
		Updates(dto.changes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("parcel")
	}
	return nil
}

func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormParcelRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*parcel.Parcel, error) {
	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_number = ?", trackingNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking number", trackingNumber)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormParcelRepository) ListByStatus(ctx context.Context, status parcel.Status) ([]*parcel.Parcel, error) {
	return r.find(ctx, "status = ?", status.String())
}

func (r *GormParcelRepository) ListActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*parcel.Parcel, error) {
	return r.find(ctx, "courier_id = ? AND status IN ?", courierID.Bytes(), activeStatuses())
}

func (r *GormParcelRepository) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*parcel.Parcel, error) {
	return r.find(ctx, "customer_id = ?", customerID.Bytes())
}

func (r *GormParcelRepository) find(ctx context.Context, query string, args ...any) ([]*parcel.Parcel, error) {
	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}

func activeStatuses() []string {
	return []string{parcel.Assigned.String(), parcel.PickedUp.String(), parcel.InTransit.String()}
}
