package services

import (
	"context"
	"time"

	"financial-tracking/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountSpec carries the caller-supplied fields for a new account. Optional
// fields are pointers; the factory fills in what is missing.
type AccountSpec struct {
	Balance        *decimal.Decimal
	CreatedAt      *time.Time
	RIB            string
	OverdraftLimit *decimal.Decimal
	InterestRate   *decimal.Decimal
}

// AccountServiceInterface is the account factory and read side of the store
type AccountServiceInterface interface {
	CreateCurrentAccount(customerID uuid.UUID, spec AccountSpec) (*models.Account, error)
	CreateSavingAccount(customerID uuid.UUID, spec AccountSpec) (*models.Account, error)
	GetAccountByID(accountID uuid.UUID) (*models.Account, error)
	GetAccountsPage(page, size int) ([]models.Account, int64, error)
	GetAllAccounts() ([]models.Account, error)
}

// TransactionServiceInterface is the transaction engine: every balance
// mutation in the system goes through it and nothing else mutates balances.
type TransactionServiceInterface interface {
	Debit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Operation, error)
	Credit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Operation, error)
	Transfer(ctx context.Context, sourceID, destinationID uuid.UUID, amount decimal.Decimal) error
	GetAccountOperations(accountID uuid.UUID) ([]models.Operation, error)
	GetAccountOperationsPage(accountID uuid.UUID, page, size int) ([]models.Operation, int64, error)
}

// CustomerServiceInterface manages customer records and the removal flow
type CustomerServiceInterface interface {
	CreateCustomer(customer *models.Customer) (*models.Customer, error)
	GetCustomerByID(customerID uuid.UUID) (*models.Customer, error)
	GetCustomersPage(page, size int) ([]models.Customer, int64, error)
	GetAllCustomers() ([]models.Customer, error)
	UpdateCustomer(customerID uuid.UUID, updates *models.Customer) (*models.Customer, error)
	GetFullCustomerData(customerID uuid.UUID) (*CustomerData, error)
	DeleteCustomer(customerID uuid.UUID) error
}

// CustomerData is a customer with its derived account and operation lists.
type CustomerData struct {
	Customer *models.Customer `json:"customer"`
	Accounts []AccountData    `json:"accounts"`
}

// AccountData pairs an account with its full operation history.
type AccountData struct {
	Account    models.Account     `json:"account"`
	Operations []models.Operation `json:"operations"`
}

// MetricsRecorderInterface records engine metrics
type MetricsRecorderInterface interface {
	RecordOperation(operationType, status string, duration time.Duration)
	RecordTransfer(status string, duration time.Duration, amount decimal.Decimal)
	RecordAccountCreated(accountType string)
	RecordCustomerCreated()
	RecordCustomerDeleted()
}
