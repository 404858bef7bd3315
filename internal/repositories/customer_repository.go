package repositories

import (
	"errors"
	"fmt"

	"financial-tracking/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrDuplicateEmail   = errors.New("a customer with this email already exists")
)

// customerRepository implements CustomerRepositoryInterface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepositoryInterface {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(customer *models.Customer) error {
	if err := r.db.Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) GetByID(id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Where("id = ?", id).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) ExistsByID(id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Customer{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check customer existence: %w", err)
	}
	return count > 0, nil
}

func (r *customerRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Customer{}).
		Where("LOWER(email) = LOWER(?)", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check customer email: %w", err)
	}
	return count > 0, nil
}

func (r *customerRepository) List(offset, limit int) ([]models.Customer, int64, error) {
	var customers []models.Customer
	var total int64

	if err := r.db.Model(&models.Customer{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	if err := r.db.Offset(offset).Limit(limit).
		Order("created_at ASC").Find(&customers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}

	return customers, total, nil
}

func (r *customerRepository) ListAll() ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.Order("created_at ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (r *customerRepository) Update(customer *models.Customer) error {
	result := r.db.Save(customer)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// DeleteWithAccounts removes a customer and everything it owns as one atomic
// unit. Operations go first, then accounts, then the customer, so no ledger
// entry is ever left pointing at a deleted account.
func (r *customerRepository) DeleteWithAccounts(customerID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Where("id = ?", customerID).First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return fmt.Errorf("failed to load customer: %w", err)
		}

		var accounts []models.Account
		if err := tx.Where("customer_id = ?", customerID).Find(&accounts).Error; err != nil {
			return fmt.Errorf("failed to load customer accounts: %w", err)
		}

		for _, account := range accounts {
			if err := tx.Where("account_id = ?", account.ID).
				Delete(&models.Operation{}).Error; err != nil {
				return fmt.Errorf("failed to delete operations: %w", err)
			}
			if err := tx.Delete(&models.Account{}, "id = ?", account.ID).Error; err != nil {
				return fmt.Errorf("failed to delete account: %w", err)
			}
		}

		if err := tx.Delete(&customer).Error; err != nil {
			return fmt.Errorf("failed to delete customer: %w", err)
		}

		return nil
	})
}
