package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/internal/domain/enum"
	domainRepo "github.com/nimeshjn/vendura-api/internal/domain/repository"
	"github.com/nimeshjn/vendura-api/pkg/pagination"
	"gorm.io/gorm"
)

type registerSessionRepository struct {
	db *gorm.DB
}

// NewRegisterSessionRepository creates a new register session repository
func NewRegisterSessionRepository(db *gorm.DB) domainRepo.RegisterSessionRepository {
	return &registerSessionRepository{db: db}
}

func (r *registerSessionRepository) Create(ctx context.Context, session *entity.RegisterSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *registerSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RegisterSession, error) {
	var session entity.RegisterSession
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *registerSessionRepository) GetOpenByVendor(ctx context.Context, vendorID uuid.UUID) (*entity.RegisterSession, error) {
	var session entity.RegisterSession
	err := r.db.WithContext(ctx).
		First(&session, "vendor_id = ? AND status = ?", vendorID, enum.SessionStatusOpen).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *registerSessionRepository) Update(ctx context.Context, session *entity.RegisterSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *registerSessionRepository) List(ctx context.Context, vendorID uuid.UUID, params *pagination.PaginationParams) ([]entity.RegisterSession, int64, error) {
	var sessions []entity.RegisterSession
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.RegisterSession{}).
		Where("vendor_id = ?", vendorID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("opened_at DESC").
		Find(&sessions).Error

	return sessions, total, err
}
