package models

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOperationValidate(t *testing.T) {
	valid := Operation{
		OperationNumber: "OP-20240131-004217",
		AccountID:       uuid.New(),
		OperationType:   OperationTypeDebit,
		Amount:          decimal.NewFromInt(200),
		Description:     "Debit operation",
	}
	assert.NoError(t, valid.Validate())

	missingAccount := valid
	missingAccount.AccountID = uuid.Nil
	assert.Error(t, missingAccount.Validate())

	missingNumber := valid
	missingNumber.OperationNumber = ""
	assert.Error(t, missingNumber.Validate())

	badType := valid
	badType.OperationType = "WITHDRAWAL"
	assert.ErrorIs(t, badType.Validate(), ErrInvalidOperationType)

	zeroAmount := valid
	zeroAmount.Amount = decimal.Zero
	assert.ErrorIs(t, zeroAmount.Validate(), ErrInvalidOperationAmount)

	negativeAmount := valid
	negativeAmount.Amount = decimal.NewFromInt(-5)
	assert.ErrorIs(t, negativeAmount.Validate(), ErrInvalidOperationAmount)
}

func TestDefaultDescription(t *testing.T) {
	assert.Equal(t, "Debit operation", DefaultDescription(OperationTypeDebit))
	assert.Equal(t, "Credit operation", DefaultDescription(OperationTypeCredit))
}

func TestGenerateOperationNumber(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := time.Date(2024, 1, 31, 15, 4, 5, 0, time.UTC)

	pattern := regexp.MustCompile(`^OP-20240131-\d{6}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, GenerateOperationNumber(rng, now))
	}

	first := GenerateOperationNumber(rand.New(rand.NewSource(3)), now)
	second := GenerateOperationNumber(rand.New(rand.NewSource(3)), now)
	assert.Equal(t, first, second)
}
