package repositories

import (
	"context"

	"financial-tracking/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=repository_mocks/mock_repositories.go -package=repository_mocks

// BalanceMutation is one leg of an atomic balance change: the account as it
// was read under the account lock, the balance it must become, and the ledger
// entry recording the change.
type BalanceMutation struct {
	Account    *models.Account
	NewBalance decimal.Decimal
	Operation  *models.Operation
}

// AccountRepositoryInterface defines the account store contract
type AccountRepositoryInterface interface {
	Save(account *models.Account) error
	GetByID(id uuid.UUID) (*models.Account, error)
	GetByCustomerID(customerID uuid.UUID) ([]models.Account, error)
	List(offset, limit int) ([]models.Account, int64, error)
	ListAll() ([]models.Account, error)
	ExistsByRIB(rib string) (bool, error)
	Delete(id uuid.UUID) error

	// ApplyBalanceMutation commits one balance change and its operation as a
	// single atomic unit. The write is guarded by the balance the caller read,
	// so a concurrent writer that slipped past the account lock surfaces as
	// ErrStaleAccount instead of a lost update.
	ApplyBalanceMutation(ctx context.Context, mutation BalanceMutation) error

	// ApplyTransfer commits the debit and credit legs of a transfer as a
	// single atomic unit; either both balances move and both operations are
	// recorded, or nothing is.
	ApplyTransfer(ctx context.Context, debit, credit BalanceMutation) error
}

// OperationRepositoryInterface defines the append-only ledger contract
type OperationRepositoryInterface interface {
	Append(operation *models.Operation) error
	ExistsByNumber(operationNumber string) (bool, error)
	ListByAccount(accountID uuid.UUID, offset, limit int) ([]models.Operation, int64, error)
	ListAllByAccount(accountID uuid.UUID) ([]models.Operation, error)
	SumByAccountAndType(accountID uuid.UUID, operationType string) (decimal.Decimal, error)
	DeleteByAccountID(accountID uuid.UUID) error
}

// CustomerRepositoryInterface defines the customer store contract
type CustomerRepositoryInterface interface {
	Create(customer *models.Customer) error
	GetByID(id uuid.UUID) (*models.Customer, error)
	ExistsByID(id uuid.UUID) (bool, error)
	ExistsByEmail(email string) (bool, error)
	List(offset, limit int) ([]models.Customer, int64, error)
	ListAll() ([]models.Customer, error)
	Update(customer *models.Customer) error

	// DeleteWithAccounts removes the customer and everything it owns in one
	// atomic unit, respecting referential integrity: operations first, then
	// accounts, then the customer record.
	DeleteWithAccounts(customerID uuid.UUID) error
}
