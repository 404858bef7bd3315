package models

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountMinimumBalance(t *testing.T) {
	current := &Account{
		AccountType:    AccountTypeCurrent,
		OverdraftLimit: decimal.NewFromInt(400),
	}
	assert.True(t, current.MinimumBalance().Equal(decimal.NewFromInt(-400)))

	saving := &Account{
		AccountType:  AccountTypeSaving,
		InterestRate: decimal.NewFromFloat(0.025),
	}
	assert.True(t, saving.MinimumBalance().Equal(decimal.Zero))
}

func TestAccountCanDebit(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		amount  decimal.Decimal
		want    bool
	}{
		{
			name: "current account within balance",
			account: Account{
				AccountType:    AccountTypeCurrent,
				Balance:        decimal.NewFromInt(3200),
				OverdraftLimit: decimal.NewFromInt(400),
			},
			amount: decimal.NewFromInt(200),
			want:   true,
		},
		{
			name: "current account into overdraft",
			account: Account{
				AccountType:    AccountTypeCurrent,
				Balance:        decimal.NewFromInt(100),
				OverdraftLimit: decimal.NewFromInt(400),
			},
			amount: decimal.NewFromInt(500),
			want:   true,
		},
		{
			name: "current account beyond overdraft",
			account: Account{
				AccountType:    AccountTypeCurrent,
				Balance:        decimal.NewFromInt(3200),
				OverdraftLimit: decimal.NewFromInt(400),
			},
			amount: decimal.NewFromInt(4000),
			want:   false,
		},
		{
			name: "saving account to exactly zero",
			account: Account{
				AccountType: AccountTypeSaving,
				Balance:     decimal.NewFromInt(150),
			},
			amount: decimal.NewFromInt(150),
			want:   true,
		},
		{
			name: "saving account below zero",
			account: Account{
				AccountType: AccountTypeSaving,
				Balance:     decimal.NewFromInt(150),
			},
			amount: decimal.NewFromFloat(150.01),
			want:   false,
		},
		{
			name: "zero amount is never debitable",
			account: Account{
				AccountType: AccountTypeSaving,
				Balance:     decimal.NewFromInt(150),
			},
			amount: decimal.Zero,
			want:   false,
		},
		{
			name: "negative amount is never debitable",
			account: Account{
				AccountType:    AccountTypeCurrent,
				Balance:        decimal.NewFromInt(150),
				OverdraftLimit: decimal.NewFromInt(400),
			},
			amount: decimal.NewFromInt(-10),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.account.CanDebit(tt.amount))
		})
	}
}

func TestAccountValidate(t *testing.T) {
	valid := Account{
		RIB:            "FR76 12345 67890 12345678901 34",
		AccountType:    AccountTypeCurrent,
		Balance:        decimal.NewFromInt(100),
		Status:         AccountStatusCreated,
		OverdraftLimit: decimal.NewFromInt(400),
		CustomerID:     uuid.New(),
	}
	assert.NoError(t, valid.Validate())

	missingCustomer := valid
	missingCustomer.CustomerID = uuid.Nil
	assert.Error(t, missingCustomer.Validate())

	missingRIB := valid
	missingRIB.RIB = ""
	assert.Error(t, missingRIB.Validate())

	badType := valid
	badType.AccountType = "CHECKING"
	assert.ErrorIs(t, badType.Validate(), ErrInvalidAccountType)

	badStatus := valid
	badStatus.Status = "CLOSED"
	assert.ErrorIs(t, badStatus.Validate(), ErrInvalidAccountStatus)

	negativeLimit := valid
	negativeLimit.OverdraftLimit = decimal.NewFromInt(-1)
	assert.ErrorIs(t, negativeLimit.Validate(), ErrNegativeLimit)

	belowMinimum := valid
	belowMinimum.Balance = decimal.NewFromInt(-500)
	assert.ErrorIs(t, belowMinimum.Validate(), ErrBalanceBelowMinimum)

	// A current account inside its overdraft is still valid.
	inOverdraft := valid
	inOverdraft.Balance = decimal.NewFromInt(-400)
	assert.NoError(t, inOverdraft.Validate())

	savingBelowZero := valid
	savingBelowZero.AccountType = AccountTypeSaving
	savingBelowZero.OverdraftLimit = decimal.Zero
	savingBelowZero.Balance = decimal.NewFromInt(-1)
	assert.ErrorIs(t, savingBelowZero.Validate(), ErrBalanceBelowMinimum)
}

func TestGenerateRIB(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	pattern := regexp.MustCompile(`^FR76 \d{5} \d{5} \d{11} \d{2}$`)
	for i := 0; i < 100; i++ {
		rib := GenerateRIB(rng)
		assert.Regexp(t, pattern, rib)
	}

	// A seeded generator is deterministic.
	first := GenerateRIB(rand.New(rand.NewSource(7)))
	second := GenerateRIB(rand.New(rand.NewSource(7)))
	assert.Equal(t, first, second)
}

func TestIsValidAccountType(t *testing.T) {
	assert.True(t, IsValidAccountType(AccountTypeCurrent))
	assert.True(t, IsValidAccountType(AccountTypeSaving))
	assert.False(t, IsValidAccountType("current"))
	assert.False(t, IsValidAccountType(""))
}

func TestIsValidAccountStatus(t *testing.T) {
	assert.True(t, IsValidAccountStatus(AccountStatusCreated))
	assert.True(t, IsValidAccountStatus(AccountStatusActivated))
	assert.True(t, IsValidAccountStatus(AccountStatusSuspended))
	assert.False(t, IsValidAccountStatus("DELETED"))
}
