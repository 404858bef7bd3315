package repositories

import (
	"errors"
	"fmt"

	"financial-tracking/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrOperationNotFound = errors.New("operation not found")

// operationRepository implements OperationRepositoryInterface. The ledger is
// append-only: nothing here updates an existing row.
type operationRepository struct {
	db *gorm.DB
}

// NewOperationRepository creates a new operation repository
func NewOperationRepository(db *gorm.DB) OperationRepositoryInterface {
	return &operationRepository{db: db}
}

// Append records one operation. Appending the same operation number twice is
// a no-op so a retried caller cannot double-record a mutation.
func (r *operationRepository) Append(operation *models.Operation) error {
	if err := r.db.Create(operation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("failed to append operation: %w", err)
	}
	return nil
}

func (r *operationRepository) ExistsByNumber(operationNumber string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Operation{}).
		Where("operation_number = ?", operationNumber).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check operation number: %w", err)
	}
	return count > 0, nil
}

// ListByAccount returns one page of an account's operations, newest first.
// The operation number breaks timestamp ties so the ordering is stable.
func (r *operationRepository) ListByAccount(accountID uuid.UUID, offset, limit int) ([]models.Operation, int64, error) {
	var operations []models.Operation
	var total int64

	if err := r.db.Model(&models.Operation{}).
		Where("account_id = ?", accountID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count operations: %w", err)
	}

	if err := r.db.Where("account_id = ?", accountID).
		Order("operation_date DESC, operation_number DESC").
		Offset(offset).Limit(limit).
		Find(&operations).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list operations: %w", err)
	}

	return operations, total, nil
}

func (r *operationRepository) ListAllByAccount(accountID uuid.UUID) ([]models.Operation, error) {
	var operations []models.Operation
	if err := r.db.Where("account_id = ?", accountID).
		Order("operation_date DESC, operation_number DESC").
		Find(&operations).Error; err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	return operations, nil
}

// SumByAccountAndType totals the recorded magnitudes of one operation type
// for an account.
func (r *operationRepository) SumByAccountAndType(accountID uuid.UUID, operationType string) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	err := r.db.Model(&models.Operation{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("account_id = ? AND operation_type = ?", accountID, operationType).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum operations: %w", err)
	}

	return result.Total, nil
}

// DeleteByAccountID bulk-deletes an account's operations. This is the
// customer-removal primitive; it must run before the account itself is
// deleted.
func (r *operationRepository) DeleteByAccountID(accountID uuid.UUID) error {
	if err := r.db.Where("account_id = ?", accountID).
		Delete(&models.Operation{}).Error; err != nil {
		return fmt.Errorf("failed to delete operations: %w", err)
	}
	return nil
}
