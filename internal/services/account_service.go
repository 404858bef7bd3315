package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"financial-tracking/internal/models"
	"financial-tracking/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrAccountNotFound       = errors.New("account not found")
	ErrInvalidCustomerID     = errors.New("customer ID must not be empty")
	ErrMissingOverdraftLimit = errors.New("current account must have an overdraft limit")
	ErrMissingInterestRate   = errors.New("saving account must have an interest rate")
	ErrNegativeAccountLimit  = errors.New("account limit must not be negative")
	ErrRIBExists             = errors.New("an account with this RIB already exists")
	ErrRIBExhausted          = errors.New("could not allocate a unique RIB within the retry budget")
	ErrInvalidPagination     = errors.New("page must be >= 0 and size must be > 0")
)

// accountService implements AccountServiceInterface. It is the only
// component that creates accounts; created accounts always start in
// CREATED status, owned by an existing customer.
type accountService struct {
	accountRepo  repositories.AccountRepositoryInterface
	customerRepo repositories.CustomerRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger

	// rng is injected so tests can seed reference generation; rand.Rand is
	// not safe for concurrent use, hence the mutex.
	rngMu          sync.Mutex
	rng            *rand.Rand
	ribMaxAttempts int
}

// NewAccountService creates the account factory
func NewAccountService(
	accountRepo repositories.AccountRepositoryInterface,
	customerRepo repositories.CustomerRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
	rng *rand.Rand,
	ribMaxAttempts int,
) AccountServiceInterface {
	return &accountService{
		accountRepo:    accountRepo,
		customerRepo:   customerRepo,
		metrics:        metrics,
		logger:         logger,
		rng:            rng,
		ribMaxAttempts: ribMaxAttempts,
	}
}

// CreateCurrentAccount creates a current account for the customer
func (s *accountService) CreateCurrentAccount(customerID uuid.UUID, spec AccountSpec) (*models.Account, error) {
	if spec.OverdraftLimit == nil {
		s.logger.Warn("attempt to create current account without overdraft limit",
			"customer_id", customerID)
		return nil, ErrMissingOverdraftLimit
	}
	if spec.OverdraftLimit.IsNegative() {
		return nil, ErrNegativeAccountLimit
	}

	return s.createAccount(customerID, spec, models.AccountTypeCurrent)
}

// CreateSavingAccount creates a saving account for the customer
func (s *accountService) CreateSavingAccount(customerID uuid.UUID, spec AccountSpec) (*models.Account, error) {
	if spec.InterestRate == nil {
		s.logger.Warn("attempt to create saving account without interest rate",
			"customer_id", customerID)
		return nil, ErrMissingInterestRate
	}
	if spec.InterestRate.IsNegative() {
		return nil, ErrNegativeAccountLimit
	}

	return s.createAccount(customerID, spec, models.AccountTypeSaving)
}

func (s *accountService) createAccount(customerID uuid.UUID, spec AccountSpec, accountType string) (*models.Account, error) {
	if customerID == uuid.Nil {
		return nil, ErrInvalidCustomerID
	}

	exists, err := s.customerRepo.ExistsByID(customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	}
	if !exists {
		s.logger.Warn("attempt to create account for non-existent customer",
			"customer_id", customerID)
		return nil, ErrCustomerNotFound
	}

	account := &models.Account{
		AccountType: accountType,
		Status:      models.AccountStatusCreated,
		CustomerID:  customerID,
	}

	if spec.Balance != nil {
		account.Balance = *spec.Balance
	}
	if spec.CreatedAt != nil {
		account.CreatedAt = *spec.CreatedAt
	}

	switch accountType {
	case models.AccountTypeCurrent:
		account.OverdraftLimit = *spec.OverdraftLimit
	case models.AccountTypeSaving:
		account.InterestRate = *spec.InterestRate
	}

	rib := spec.RIB
	if rib == "" {
		rib, err = s.generateUniqueRIB()
		if err != nil {
			return nil, err
		}
	} else {
		ribTaken, err := s.accountRepo.ExistsByRIB(rib)
		if err != nil {
			return nil, fmt.Errorf("failed to check RIB: %w", err)
		}
		if ribTaken {
			return nil, ErrRIBExists
		}
	}
	account.RIB = rib

	if err := s.accountRepo.Save(account); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRIB) {
			return nil, ErrRIBExists
		}
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.metrics.RecordAccountCreated(accountType)
	s.logger.Info("account created",
		"account_id", account.ID,
		"account_type", accountType,
		"customer_id", customerID,
		"rib", account.RIB)

	return account, nil
}

// generateUniqueRIB draws random RIBs until the store confirms one is free.
// The retry budget bounds the sampling so a pathological collision streak
// fails instead of spinning.
func (s *accountService) generateUniqueRIB() (string, error) {
	for i := 0; i < s.ribMaxAttempts; i++ {
		s.rngMu.Lock()
		rib := models.GenerateRIB(s.rng)
		s.rngMu.Unlock()

		exists, err := s.accountRepo.ExistsByRIB(rib)
		if err != nil {
			return "", fmt.Errorf("failed to check RIB uniqueness: %w", err)
		}
		if !exists {
			return rib, nil
		}
	}

	s.logger.Error("RIB generation budget exhausted", "attempts", s.ribMaxAttempts)
	return "", ErrRIBExhausted
}

// GetAccountByID retrieves an account
func (s *accountService) GetAccountByID(accountID uuid.UUID) (*models.Account, error) {
	if accountID == uuid.Nil {
		return nil, ErrAccountNotFound
	}

	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

// GetAccountsPage retrieves one page of accounts
func (s *accountService) GetAccountsPage(page, size int) ([]models.Account, int64, error) {
	if page < 0 || size <= 0 {
		return nil, 0, ErrInvalidPagination
	}

	accounts, total, err := s.accountRepo.List(page*size, size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, total, nil
}

// GetAllAccounts retrieves every account without pagination
func (s *accountService) GetAllAccounts() ([]models.Account, error) {
	accounts, err := s.accountRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
