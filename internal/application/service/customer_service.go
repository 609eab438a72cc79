package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/internal/domain/repository"
	"github.com/nimeshjn/vendura-api/pkg/apperror"
	"github.com/nimeshjn/vendura-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	VendorID uuid.UUID
	Name     string
	Email    *string
	Phone    *string
	Address  *string
}

// CreateCustomer creates a new saved customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.Phone != nil && *input.Phone != "" {
		existing, err := s.customerRepo.GetByPhone(ctx, input.VendorID, *input.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A customer with this phone already exists")
		}
	}

	customer := &entity.Customer{
		VendorID: input.VendorID,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID, scoped to the vendor
func (s *CustomerService) GetCustomer(ctx context.Context, vendorID, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.VendorID != vendorID {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// UpdateCustomer updates an existing customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, vendorID, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a saved customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, vendorID, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, vendorID, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers lists saved customers with pagination and search
func (s *CustomerService) ListCustomers(ctx context.Context, vendorID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}

	customers, total, err := s.customerRepo.List(ctx, vendorID, params, search)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(customers,
		pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
