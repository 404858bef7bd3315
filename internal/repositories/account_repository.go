package repositories

import (
	"context"
	"errors"
	"fmt"

	"financial-tracking/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateRIB    = errors.New("an account with this RIB already exists")

	// ErrStaleAccount means the guarded balance write matched no row: the
	// balance changed between read and write. Callers retry under the lock
	// or surface the conflict.
	ErrStaleAccount = errors.New("account was modified concurrently")
)

// accountRepository implements AccountRepositoryInterface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &accountRepository{db: db}
}

// Save upserts an account keyed by its ID. A new account (nil ID) is created;
// an existing one is written in full.
func (r *accountRepository) Save(account *models.Account) error {
	var err error
	if account.ID == uuid.Nil {
		err = r.db.Create(account).Error
	} else {
		result := r.db.Save(account)
		err = result.Error
		if err == nil && result.RowsAffected == 0 {
			err = r.db.Create(account).Error
		}
	}

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRIB
		}
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *accountRepository) GetByID(id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByCustomerID(customerID uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Where("customer_id = ?", customerID).
		Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get customer accounts: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) List(offset, limit int) ([]models.Account, int64, error) {
	var accounts []models.Account
	var total int64

	if err := r.db.Model(&models.Account{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	if err := r.db.Offset(offset).Limit(limit).
		Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, total, nil
}

func (r *accountRepository) ListAll() ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) ExistsByRIB(rib string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).
		Where("rib = ?", rib).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check RIB existence: %w", err)
	}
	return count > 0, nil
}

func (r *accountRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Account{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// ApplyBalanceMutation commits one balance change with its ledger entry
func (r *accountRepository) ApplyBalanceMutation(ctx context.Context, mutation BalanceMutation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyMutation(tx, mutation)
	})
	if err != nil {
		return err
	}

	mutation.Account.Balance = mutation.NewBalance
	return nil
}

// ApplyTransfer commits both legs of a transfer in one transaction
func (r *accountRepository) ApplyTransfer(ctx context.Context, debit, credit BalanceMutation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyMutation(tx, debit); err != nil {
			return err
		}
		return applyMutation(tx, credit)
	})
	if err != nil {
		return err
	}

	debit.Account.Balance = debit.NewBalance
	credit.Account.Balance = credit.NewBalance
	return nil
}

// applyMutation writes one guarded balance update and appends its operation
// inside the caller's transaction.
func applyMutation(tx *gorm.DB, mutation BalanceMutation) error {
	result := tx.Model(mutation.Account).
		Where("balance = ?", mutation.Account.Balance).
		Update("balance", mutation.NewBalance)
	if result.Error != nil {
		return fmt.Errorf("failed to update account balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaleAccount
	}

	if err := tx.Create(mutation.Operation).Error; err != nil {
		return fmt.Errorf("failed to record operation: %w", err)
	}

	return nil
}
