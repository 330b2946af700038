package courierrepo

import (
	"context"
	"errors"
	"fmt"

	"parcelhub/internal/adapters/out/postgres/pgtypes"
	"parcelhub/internal/core/domain/model/courier"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a repository bound to db, which may be a transaction.
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Add inserts a new courier. A taken id or username yields errs.ErrObjectExists.
func (r *GormCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgtypes.IsUniqueViolation(err) {
			return fmt.Errorf("%w: courier %q", errs.ErrObjectExists, c.Username())
		}
		return err
	}
	return nil
}

// Update writes c only if the row still has the version and availability
// c was loaded with.
func (r *GormCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ? AND version = ? AND available = ?", dto.ID, c.ExpectedVersion(), c.ExpectedAvailable()).
		Updates(dto.changes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("courier")
	}
	return nil
}

func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "courier", id.String(), "id = ?", id.Bytes())
}

func (r *GormCourierRepository) GetByUsername(ctx context.Context, username string) (*courier.Courier, error) {
	return r.first(ctx, "username", username, "username = ?", username)
}

func (r *GormCourierRepository) first(ctx context.Context, param string, key any, query string, args ...any) (*courier.Courier, error) {
	var dto CourierDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, err
	}
	return toDomain(dto)
}
