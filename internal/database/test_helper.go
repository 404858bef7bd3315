package database

import (
	"fmt"
	"testing"

	"financial-tracking/internal/config"
	"financial-tracking/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CreateTestCustomer(t *testing.T, db *DB) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Email:     gofakeit.Email(),
		Gender:    models.GenderFemale,
	}

	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("failed to create test customer: %v", err)
	}

	return customer
}

func CreateTestAccount(t *testing.T, db *DB, customer *models.Customer, accountType string, balance decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		RIB:         fmt.Sprintf("FR76 %05d %05d %011d %02d", gofakeit.Number(10000, 99999), gofakeit.Number(10000, 99999), gofakeit.Number(0, 99999999999), gofakeit.Number(0, 99)),
		AccountType: accountType,
		Balance:     balance,
		Status:      models.AccountStatusCreated,
		CustomerID:  customer.ID,
	}

	if accountType == models.AccountTypeSaving {
		account.InterestRate = decimal.NewFromFloat(0.0250)
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}

	return account
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"operations",
		"accounts",
		"customers",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}

	sqlDB, err := db.DB.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}
