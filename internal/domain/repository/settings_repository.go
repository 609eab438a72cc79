package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
)

// SettingsRepository defines the interface for vendor settings operations
type SettingsRepository interface {
	GetByVendorID(ctx context.Context, vendorID uuid.UUID) (*entity.VendorSettings, error)
	Create(ctx context.Context, settings *entity.VendorSettings) error
	Update(ctx context.Context, settings *entity.VendorSettings) error
}
