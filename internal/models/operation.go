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
	OperationTypeDebit  = "DEBIT"
	OperationTypeCredit = "CREDIT"

	DefaultDebitDescription  = "Debit operation"
	DefaultCreditDescription = "Credit operation"
)

var (
	ErrInvalidOperationType   = errors.New("invalid operation type")
	ErrInvalidOperationAmount = errors.New("operation amount must be positive")
	ErrEmptyDescription       = errors.New("operation description is required")
)

// Operation is one immutable ledger entry. Every balance mutation is paired
// with exactly one Operation; entries are never updated or deleted by the
// ledger itself (bulk deletion belongs to customer removal).
type Operation struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OperationNumber string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"operation_number"`
	AccountID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	OperationType   string          `gorm:"type:varchar(10);not null" json:"operation_type"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	OperationDate   time.Time       `gorm:"not null;index" json:"operation_date"`

	// Associations
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Operation
func (o *Operation) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}

	if o.OperationDate.IsZero() {
		o.OperationDate = time.Now()
	}

	if o.Description == "" {
		o.Description = DefaultDescription(o.OperationType)
	}

	return o.Validate()
}

// Validate validates the operation fields
func (o *Operation) Validate() error {
	if o.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if o.OperationNumber == "" {
		return errors.New("operation number is required")
	}

	if !IsValidOperationType(o.OperationType) {
		return ErrInvalidOperationType
	}

	// Amounts are stored as positive magnitudes; the type carries the sign.
	if o.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidOperationAmount
	}

	if o.Description == "" {
		return ErrEmptyDescription
	}

	return nil
}

// TableName returns the table name for Operation
func (o *Operation) TableName() string {
	return "operations"
}

// IsValidOperationType checks if the operation type is valid
func IsValidOperationType(operationType string) bool {
	switch operationType {
	case OperationTypeDebit, OperationTypeCredit:
		return true
	default:
		return false
	}
}

// DefaultDescription returns the fallback description for an operation type.
func DefaultDescription(operationType string) string {
	if operationType == OperationTypeDebit {
		return DefaultDebitDescription
	}
	return DefaultCreditDescription
}

// GenerateOperationNumber builds a human-readable operation number from a
// date stamp and a random suffix, e.g. "OP-20240131-004217". Collisions are
// checked by the caller against the ledger before issuing.
func GenerateOperationNumber(r *rand.Rand, now time.Time) string {
	return fmt.Sprintf("OP-%s-%06d", now.Format("20060102"), r.Intn(1_000_000))
}
