package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	domainRepo "github.com/nimeshjn/vendura-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetByVendorID(ctx context.Context, vendorID uuid.UUID) (*entity.VendorSettings, error) {
	var settings entity.VendorSettings
	err := r.db.WithContext(ctx).First(&settings, "vendor_id = ?", vendorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

func (r *settingsRepository) Create(ctx context.Context, settings *entity.VendorSettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

func (r *settingsRepository) Update(ctx context.Context, settings *entity.VendorSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
