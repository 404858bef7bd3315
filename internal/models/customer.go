package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

var (
	ErrInvalidGender = errors.New("invalid gender")
	ErrEmailRequired = errors.New("customer email is required")
)

// Customer owns zero or more accounts. Ownership is one-directional:
// Account holds the customer id, the customer record stores no account list.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FirstName string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100)" json:"last_name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Gender    string    `gorm:"type:varchar(10)" json:"gender,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return c.Validate()
}

// Validate validates the customer fields
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return ErrEmailRequired
	}

	if c.Gender != "" && c.Gender != GenderMale && c.Gender != GenderFemale {
		return ErrInvalidGender
	}

	return nil
}

// FullName returns the customer's display name.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// TableName returns the table name for Customer
func (c *Customer) TableName() string {
	return "customers"
}
