package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/internal/domain/enum"
	"github.com/nimeshjn/vendura-api/internal/domain/repository"
	"github.com/nimeshjn/vendura-api/pkg/apperror"
	"github.com/nimeshjn/vendura-api/pkg/pagination"
)

// RegisterService handles register session lifecycle: opening the till with
// a counted float, tracking sales against it and closing with reconciliation.
type RegisterService struct {
	registerRepo repository.RegisterSessionRepository
}

// NewRegisterService creates a new register service
func NewRegisterService(registerRepo repository.RegisterSessionRepository) *RegisterService {
	return &RegisterService{registerRepo: registerRepo}
}

// OpenRegisterInput represents the open register input
type OpenRegisterInput struct {
	VendorID     uuid.UUID
	RegisterName string
	CashierName  string
	OpeningFloat float64
	Notes        *string
}

// OpenRegister opens a new session. A vendor may have at most one open
// session; opening while one exists is a conflict.
func (s *RegisterService) OpenRegister(ctx context.Context, input *OpenRegisterInput) (*entity.RegisterSession, error) {
	existing, err := s.registerRepo.GetOpenByVendor(ctx, input.VendorID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrRegisterOpen
	}

	if input.OpeningFloat < 0 {
		return nil, apperror.NewBadRequestError("Opening float cannot be negative")
	}

	registerName := input.RegisterName
	if registerName == "" {
		registerName = "Main Register"
	}

	session := &entity.RegisterSession{
		VendorID:     input.VendorID,
		RegisterName: registerName,
		CashierName:  input.CashierName,
		OpeningFloat: int64(input.OpeningFloat * 100),
		Status:       enum.SessionStatusOpen,
		Notes:        input.Notes,
		OpenedAt:     time.Now(),
	}

	if err := s.registerRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// CloseRegisterInput represents the close register input
type CloseRegisterInput struct {
	VendorID      uuid.UUID
	ClosingAmount float64
	Notes         *string
}

// CloseRegisterOutput pairs the closed session with its reconciliation
type CloseRegisterOutput struct {
	Session *entity.RegisterSession `json:"session"`
	Summary entity.CloseSummary     `json:"summary"`
}

// CloseRegister closes the vendor's open session, reconciling the counted
// drawer amount against the expected cash.
func (s *RegisterService) CloseRegister(ctx context.Context, input *CloseRegisterInput) (*CloseRegisterOutput, error) {
	session, err := s.registerRepo.GetOpenByVendor(ctx, input.VendorID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrRegisterNotOpen
	}

	if input.ClosingAmount < 0 {
		return nil, apperror.NewBadRequestError("Closing amount cannot be negative")
	}

	summary := session.Reconcile(int64(input.ClosingAmount * 100))

	now := time.Now()
	session.Status = enum.SessionStatusClosed
	session.ClosedAt = &now
	if input.Notes != nil {
		session.Notes = input.Notes
	}

	if err := s.registerRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	return &CloseRegisterOutput{Session: session, Summary: summary}, nil
}

// RegisterStatus describes whether the register is open and the session if so
type RegisterStatus struct {
	IsOpen  bool                    `json:"register_open"`
	Session *entity.RegisterSession `json:"session,omitempty"`
}

// GetStatus returns the vendor's current register status
func (s *RegisterService) GetStatus(ctx context.Context, vendorID uuid.UUID) (*RegisterStatus, error) {
	session, err := s.registerRepo.GetOpenByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return &RegisterStatus{
		IsOpen:  session != nil,
		Session: session,
	}, nil
}

// ListSessions lists the vendor's past register sessions
func (s *RegisterService) ListSessions(ctx context.Context, vendorID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.RegisterSession], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}

	sessions, total, err := s.registerRepo.List(ctx, vendorID, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(sessions,
		pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
