package services

import (
	"context"
	"log/slog"
	"math/rand"
	"testing"

	"financial-tracking/internal/database"
	"financial-tracking/internal/models"
	"financial-tracking/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// CustomerServiceSuite defines the test suite for CustomerServiceInterface
type CustomerServiceSuite struct {
	suite.Suite
	db            *database.DB
	service       CustomerServiceInterface
	transactions  TransactionServiceInterface
	accountRepo   repositories.AccountRepositoryInterface
	operationRepo repositories.OperationRepositoryInterface
}

// SetupTest runs before each test in the suite
func (s *CustomerServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())

	customerRepo := repositories.NewCustomerRepository(s.db.DB)
	s.accountRepo = repositories.NewAccountRepository(s.db.DB)
	s.operationRepo = repositories.NewOperationRepository(s.db.DB)

	s.service = NewCustomerService(customerRepo, s.accountRepo, s.operationRepo, NewNoopMetrics(), slog.Default())
	s.transactions = NewTransactionService(
		s.accountRepo,
		s.operationRepo,
		NewNoopMetrics(),
		slog.Default(),
		rand.New(rand.NewSource(5)),
		10,
	)
}

// TearDownTest runs after each test in the suite
func (s *CustomerServiceSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestCustomerServiceSuite runs the test suite
func TestCustomerServiceSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceSuite))
}

func (s *CustomerServiceSuite) TestCreateCustomer() {
	customer, err := s.service.CreateCustomer(&models.Customer{
		FirstName: "Omar",
		LastName:  "Benali",
		Email:     "omar.benali@example.com",
		Gender:    models.GenderMale,
	})
	s.NoError(err)
	s.NotEqual(uuid.Nil, customer.ID)
}

func (s *CustomerServiceSuite) TestCreateCustomer_MissingEmail() {
	_, err := s.service.CreateCustomer(&models.Customer{FirstName: "No", LastName: "Email"})
	s.ErrorIs(err, ErrCustomerEmailRequired)
}

func (s *CustomerServiceSuite) TestCreateCustomer_DuplicateEmail() {
	_, err := s.service.CreateCustomer(&models.Customer{
		FirstName: "First", LastName: "Taker", Email: "taken@example.com",
	})
	s.Require().NoError(err)

	_, err = s.service.CreateCustomer(&models.Customer{
		FirstName: "Second", LastName: "Comer", Email: "TAKEN@example.com",
	})
	s.ErrorIs(err, ErrCustomerEmailExists)
}

func (s *CustomerServiceSuite) TestCreateCustomer_Nil() {
	_, err := s.service.CreateCustomer(nil)
	s.ErrorIs(err, ErrCustomerRequired)
}

func (s *CustomerServiceSuite) TestGetCustomerByID_NotFound() {
	_, err := s.service.GetCustomerByID(uuid.New())
	s.ErrorIs(err, ErrCustomerNotFound)
}

func (s *CustomerServiceSuite) TestUpdateCustomer_Partial() {
	customer := database.CreateTestCustomer(s.T(), s.db)

	updated, err := s.service.UpdateCustomer(customer.ID, &models.Customer{LastName: "Renamed"})
	s.NoError(err)
	s.Equal("Renamed", updated.LastName)
	s.Equal(customer.FirstName, updated.FirstName)
	s.Equal(customer.Email, updated.Email)
}

func (s *CustomerServiceSuite) TestUpdateCustomer_EmailTaken() {
	first := database.CreateTestCustomer(s.T(), s.db)
	second := database.CreateTestCustomer(s.T(), s.db)

	_, err := s.service.UpdateCustomer(second.ID, &models.Customer{Email: first.Email})
	s.ErrorIs(err, ErrCustomerEmailExists)
}

func (s *CustomerServiceSuite) TestUpdateCustomer_SameEmailIsNoConflict() {
	customer := database.CreateTestCustomer(s.T(), s.db)

	updated, err := s.service.UpdateCustomer(customer.ID, &models.Customer{Email: customer.Email})
	s.NoError(err)
	s.Equal(customer.Email, updated.Email)
}

func (s *CustomerServiceSuite) TestGetFullCustomerData() {
	customer := database.CreateTestCustomer(s.T(), s.db)
	account := database.CreateTestAccount(s.T(), s.db, customer, models.AccountTypeCurrent, decimal.NewFromInt(1000))

	_, err := s.transactions.Credit(context.Background(), account.ID, decimal.NewFromInt(250), "")
	s.Require().NoError(err)

	data, err := s.service.GetFullCustomerData(customer.ID)
	s.NoError(err)
	s.Equal(customer.ID, data.Customer.ID)
	s.Require().Len(data.Accounts, 1)
	s.Equal(account.ID, data.Accounts[0].Account.ID)
	s.Require().Len(data.Accounts[0].Operations, 1)
	s.Equal(models.OperationTypeCredit, data.Accounts[0].Operations[0].OperationType)
}

func (s *CustomerServiceSuite) TestDeleteCustomer_CascadesToLedger() {
	customer := database.CreateTestCustomer(s.T(), s.db)
	account := database.CreateTestAccount(s.T(), s.db, customer, models.AccountTypeCurrent, decimal.NewFromInt(1000))

	_, err := s.transactions.Debit(context.Background(), account.ID, decimal.NewFromInt(100), "")
	s.Require().NoError(err)

	s.NoError(s.service.DeleteCustomer(customer.ID))

	_, err = s.service.GetCustomerByID(customer.ID)
	s.ErrorIs(err, ErrCustomerNotFound)

	_, err = s.accountRepo.GetByID(account.ID)
	s.ErrorIs(err, repositories.ErrAccountNotFound)

	operations, err := s.operationRepo.ListAllByAccount(account.ID)
	s.NoError(err)
	s.Empty(operations)
}

func (s *CustomerServiceSuite) TestDeleteCustomer_NotFound() {
	s.ErrorIs(s.service.DeleteCustomer(uuid.New()), ErrCustomerNotFound)
}
