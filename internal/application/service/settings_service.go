package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/internal/domain/repository"
)

// SettingsService handles vendor settings business logic
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings retrieves vendor settings, creating defaults if not exists
func (s *SettingsService) GetSettings(ctx context.Context, vendorID uuid.UUID) (*entity.VendorSettings, error) {
	settings, err := s.settingsRepo.GetByVendorID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = &entity.VendorSettings{
			VendorID:       vendorID,
			StoreName:      "My Store",
			Currency:       "INR",
			DefaultTaxName: "GST",
			ReceiptFooter:  "Thank you for shopping with us!",
			LowStockAlerts: true,
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	VendorID       uuid.UUID
	StoreName      string
	Address        string
	Phone          string
	TaxID          string
	Currency       string
	DefaultTaxName string
	DefaultTaxRate int
	ReceiptFooter  string
	LowStockAlerts bool
	DailySummary   bool
}

// UpdateSettings updates vendor settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.VendorSettings, error) {
	settings, err := s.settingsRepo.GetByVendorID(ctx, input.VendorID)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = &entity.VendorSettings{
			VendorID: input.VendorID,
		}
	}

	settings.StoreName = input.StoreName
	settings.Address = input.Address
	settings.Phone = input.Phone
	settings.TaxID = input.TaxID
	settings.Currency = input.Currency
	settings.DefaultTaxName = input.DefaultTaxName
	settings.DefaultTaxRate = input.DefaultTaxRate
	settings.ReceiptFooter = input.ReceiptFooter
	settings.LowStockAlerts = input.LowStockAlerts
	settings.DailySummary = input.DailySummary

	if settings.ID == uuid.Nil {
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	} else {
		if err := s.settingsRepo.Update(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}
