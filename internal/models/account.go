package models

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AccountTypeCurrent = "CURRENT"
	AccountTypeSaving  = "SAVING"

	AccountStatusCreated   = "CREATED"
	AccountStatusActivated = "ACTIVATED"
	AccountStatusSuspended = "SUSPENDED"
)

var (
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidAccountStatus = errors.New("invalid account status")
	ErrNegativeLimit        = errors.New("account limit must not be negative")
	ErrBalanceBelowMinimum  = errors.New("balance is below the account minimum")
)

// Account is a bank account. The two variants of the source domain
// (current account with an overdraft, saving account with an interest rate)
// share one record discriminated by AccountType; OverdraftLimit is only
// meaningful for current accounts and InterestRate only for saving accounts.
type Account struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	RIB            string          `gorm:"type:varchar(40);uniqueIndex;not null" json:"rib"`
	AccountType    string          `gorm:"type:varchar(20);not null;index" json:"account_type"`
	Balance        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	Status         string          `gorm:"type:varchar(20);not null;default:'CREATED'" json:"status"`
	OverdraftLimit decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"overdraft_limit,omitempty"`
	InterestRate   decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0" json:"interest_rate,omitempty"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`

	// Operations are a derived query, never a stored back-reference on the
	// customer side. The association exists for eager loads only.
	Operations []Operation `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	if a.Status == "" {
		a.Status = AccountStatusCreated
	}

	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// BeforeUpdate hook for Account
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.CustomerID == uuid.Nil {
		return errors.New("customer ID is required")
	}

	if a.RIB == "" {
		return errors.New("RIB is required")
	}

	if !IsValidAccountType(a.AccountType) {
		return ErrInvalidAccountType
	}

	if !IsValidAccountStatus(a.Status) {
		return ErrInvalidAccountStatus
	}

	if a.OverdraftLimit.IsNegative() || a.InterestRate.IsNegative() {
		return ErrNegativeLimit
	}

	if a.Balance.LessThan(a.MinimumBalance()) {
		return ErrBalanceBelowMinimum
	}

	return nil
}

// MinimumBalance returns the lowest balance this account may hold.
// A current account may go negative down to its overdraft limit,
// a saving account never goes below zero.
func (a *Account) MinimumBalance() decimal.Decimal {
	if a.AccountType == AccountTypeCurrent {
		return a.OverdraftLimit.Neg()
	}
	return decimal.Zero
}

// CanDebit checks whether debiting amount keeps the balance at or above
// the variant-specific minimum.
func (a *Account) CanDebit(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero) &&
		a.Balance.Sub(amount).GreaterThanOrEqual(a.MinimumBalance())
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}

// IsValidAccountType checks if the account type is valid
func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeCurrent, AccountTypeSaving:
		return true
	default:
		return false
	}
}

// IsValidAccountStatus checks if the account status is valid
func IsValidAccountStatus(status string) bool {
	switch status {
	case AccountStatusCreated, AccountStatusActivated, AccountStatusSuspended:
		return true
	default:
		return false
	}
}

const (
	ribCountryCode = "FR"
	ribControlKey  = "76"
)

// GenerateRIB builds a pseudo-French RIB: country code and control key
// followed by bank code, branch code, account number and key,
// e.g. "FR76 12345 67890 12345678901 34". Uniqueness is the caller's
// concern; the generator is injected so tests can seed it.
func GenerateRIB(r *rand.Rand) string {
	bankCode := fmt.Sprintf("%05d", 10_000+r.Intn(90_000))
	branchCode := fmt.Sprintf("%05d", 10_000+r.Intn(90_000))
	accountNumber := fmt.Sprintf("%011d", r.Int63n(100_000_000_000))
	ribKey := fmt.Sprintf("%02d", r.Intn(100))

	return fmt.Sprintf("%s%s %s %s %s %s",
		ribCountryCode, ribControlKey, bankCode, branchCode, accountNumber, ribKey)
}
