package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/pkg/pagination"
)

// RegisterSessionRepository defines the interface for register session
// data operations. At most one open session exists per vendor.
type RegisterSessionRepository interface {
	Create(ctx context.Context, session *entity.RegisterSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.RegisterSession, error)
	// GetOpenByVendor returns the vendor's open session, or nil when the
	// register is closed.
	GetOpenByVendor(ctx context.Context, vendorID uuid.UUID) (*entity.RegisterSession, error)
	Update(ctx context.Context, session *entity.RegisterSession) error
	List(ctx context.Context, vendorID uuid.UUID, params *pagination.PaginationParams) ([]entity.RegisterSession, int64, error)
}
