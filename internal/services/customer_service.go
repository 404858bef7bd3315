package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"financial-tracking/internal/models"
	"financial-tracking/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrCustomerRequired      = errors.New("customer must not be nil")
	ErrCustomerEmailRequired = errors.New("customer email must not be empty")
	ErrCustomerEmailExists   = errors.New("a customer with this email already exists")
)

// customerService implements CustomerServiceInterface. It owns the customer
// lifecycle including removal, which is the only path that ever deletes
// ledger entries: operations go first, then accounts, then the customer.
type customerService struct {
	customerRepo  repositories.CustomerRepositoryInterface
	accountRepo   repositories.AccountRepositoryInterface
	operationRepo repositories.OperationRepositoryInterface
	metrics       MetricsRecorderInterface
	logger        *slog.Logger
}

// NewCustomerService creates a customer service
func NewCustomerService(
	customerRepo repositories.CustomerRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	operationRepo repositories.OperationRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) CustomerServiceInterface {
	return &customerService{
		customerRepo:  customerRepo,
		accountRepo:   accountRepo,
		operationRepo: operationRepo,
		metrics:       metrics,
		logger:        logger,
	}
}

// CreateCustomer registers a new customer; the email must be unique
// case-insensitively.
func (s *customerService) CreateCustomer(customer *models.Customer) (*models.Customer, error) {
	if customer == nil {
		return nil, ErrCustomerRequired
	}
	if strings.TrimSpace(customer.Email) == "" {
		s.logger.Warn("attempt to create customer without email")
		return nil, ErrCustomerEmailRequired
	}

	exists, err := s.customerRepo.ExistsByEmail(customer.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check customer email: %w", err)
	}
	if exists {
		s.logger.Warn("attempt to create customer with existing email", "email", customer.Email)
		return nil, ErrCustomerEmailExists
	}

	if err := s.customerRepo.Create(customer); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrCustomerEmailExists
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.metrics.RecordCustomerCreated()
	s.logger.Info("customer created", "customer_id", customer.ID, "email", customer.Email)
	return customer, nil
}

// GetCustomerByID retrieves a customer
func (s *customerService) GetCustomerByID(customerID uuid.UUID) (*models.Customer, error) {
	if customerID == uuid.Nil {
		return nil, ErrInvalidCustomerID
	}

	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrCustomerNotFound) {
			s.logger.Warn("attempt to retrieve non-existent customer", "customer_id", customerID)
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return customer, nil
}

// GetCustomersPage retrieves one page of customers
func (s *customerService) GetCustomersPage(page, size int) ([]models.Customer, int64, error) {
	if page < 0 || size <= 0 {
		return nil, 0, ErrInvalidPagination
	}

	customers, total, err := s.customerRepo.List(page*size, size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, total, nil
}

// GetAllCustomers retrieves every customer without pagination
func (s *customerService) GetAllCustomers() ([]models.Customer, error) {
	customers, err := s.customerRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// UpdateCustomer applies a partial update: only non-zero fields of updates
// are written.
func (s *customerService) UpdateCustomer(customerID uuid.UUID, updates *models.Customer) (*models.Customer, error) {
	if updates == nil {
		return nil, ErrCustomerRequired
	}

	existing, err := s.GetCustomerByID(customerID)
	if err != nil {
		return nil, err
	}

	if updates.FirstName != "" {
		existing.FirstName = updates.FirstName
	}
	if updates.LastName != "" {
		existing.LastName = updates.LastName
	}
	if updates.Gender != "" {
		existing.Gender = updates.Gender
	}
	if updates.Email != "" && !strings.EqualFold(updates.Email, existing.Email) {
		taken, err := s.customerRepo.ExistsByEmail(updates.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check customer email: %w", err)
		}
		if taken {
			return nil, ErrCustomerEmailExists
		}
		existing.Email = updates.Email
	}

	if err := s.customerRepo.Update(existing); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrCustomerEmailExists
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	s.logger.Info("customer updated", "customer_id", customerID)
	return existing, nil
}

// GetFullCustomerData returns the customer with all accounts and each
// account's complete operation history. Both lists are derived queries.
func (s *customerService) GetFullCustomerData(customerID uuid.UUID) (*CustomerData, error) {
	customer, err := s.GetCustomerByID(customerID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.GetByCustomerID(customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer accounts: %w", err)
	}

	data := &CustomerData{
		Customer: customer,
		Accounts: make([]AccountData, 0, len(accounts)),
	}

	for _, account := range accounts {
		operations, err := s.operationRepo.ListAllByAccount(account.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load account operations: %w", err)
		}
		data.Accounts = append(data.Accounts, AccountData{
			Account:    account,
			Operations: operations,
		})
	}

	return data, nil
}

// DeleteCustomer removes the customer and all owned data in one atomic unit,
// operations before accounts.
func (s *customerService) DeleteCustomer(customerID uuid.UUID) error {
	if customerID == uuid.Nil {
		return ErrInvalidCustomerID
	}

	if err := s.customerRepo.DeleteWithAccounts(customerID); err != nil {
		if errors.Is(err, repositories.ErrCustomerNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.metrics.RecordCustomerDeleted()
	s.logger.Info("customer deleted with accounts and operations", "customer_id", customerID)
	return nil
}
