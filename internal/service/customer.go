package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
	"github.com/Kavin001K/fabzclean-backend/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) CreateCustomer(ctx context.Context, actor domain.Actor, customer *domain.Customer) error {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleFranchiseManager, domain.RoleManager:
	default:
		return fmt.Errorf("%w: role %q may not register customers", domain.ErrUnauthorized, actor.Role)
	}
	if strings.TrimSpace(customer.Name) == "" {
		return fmt.Errorf("%w: customer name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(customer.Email) == "" {
		return fmt.Errorf("%w: customer email is required", domain.ErrValidation)
	}

	// Non-admin operators register customers into their own franchise.
	if scope := actor.Scope(); scope != nil {
		customer.FranchiseID = scope
	}
	customer.IsActive = true
	return s.customerRepo.Create(ctx, customer)
}

func (s *customerService) GetCustomer(ctx context.Context, actor domain.Actor, id int32) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scope := actor.Scope(); scope != nil {
		if customer.FranchiseID == nil || *customer.FranchiseID != *scope {
			return nil, domain.ErrNotFound
		}
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, actor domain.Actor, page, pageSize int32) ([]domain.Customer, int32, error) {
	return s.customerRepo.List(ctx, actor.Scope(), page, pageSize)
}
