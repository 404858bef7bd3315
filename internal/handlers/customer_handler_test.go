package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"financial-tracking/internal/database"
	"financial-tracking/internal/dto"
	"financial-tracking/internal/errors"
	"financial-tracking/internal/models"
	"financial-tracking/internal/repositories"
	"financial-tracking/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// CustomerHandlerTestSuite wires the handler against real services on an
// in-memory store.
type CustomerHandlerTestSuite struct {
	suite.Suite
	db      *database.DB
	echo    *echo.Echo
	handler *CustomerHandler
}

func (s *CustomerHandlerTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())

	accountRepo := repositories.NewAccountRepository(s.db.DB)
	operationRepo := repositories.NewOperationRepository(s.db.DB)
	customerRepo := repositories.NewCustomerRepository(s.db.DB)

	customerService := services.NewCustomerService(
		customerRepo, accountRepo, operationRepo, services.NewNoopMetrics(), slog.Default())
	s.handler = NewCustomerHandler(customerService)

	s.echo = echo.New()
	s.echo.Validator = NewValidator()
}

func (s *CustomerHandlerTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestCustomerHandlerSuite(t *testing.T) {
	suite.Run(t, new(CustomerHandlerTestSuite))
}

func (s *CustomerHandlerTestSuite) jsonContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *CustomerHandlerTestSuite) decodeError(rec *httptest.ResponseRecorder) errors.ErrorResponse {
	var resp errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (s *CustomerHandlerTestSuite) TestCreateCustomer() {
	c, rec := s.jsonContext(http.MethodPost, "/",
		`{"first_name":"Lina","last_name":"Moreau","email":"lina.moreau@example.com","gender":"FEMALE"}`)

	s.NoError(s.handler.CreateCustomer(c))
	s.Equal(http.StatusCreated, rec.Code)

	var resp dto.CustomerResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("lina.moreau@example.com", resp.Customer.Email)
	s.NotEqual(uuid.Nil, resp.Customer.ID)
}

func (s *CustomerHandlerTestSuite) TestCreateCustomer_MissingEmail() {
	c, rec := s.jsonContext(http.MethodPost, "/", `{"first_name":"No","last_name":"Email"}`)

	s.NoError(s.handler.CreateCustomer(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.ValidationGeneral), s.decodeError(rec).Error.Code)
}

func (s *CustomerHandlerTestSuite) TestCreateCustomer_DuplicateEmail() {
	customer := database.CreateTestCustomer(s.T(), s.db)

	c, rec := s.jsonContext(http.MethodPost, "/",
		`{"first_name":"Copy","last_name":"Cat","email":"`+customer.Email+`"}`)

	s.NoError(s.handler.CreateCustomer(c))
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(string(errors.CustomerAlreadyExists), s.decodeError(rec).Error.Code)
}

func (s *CustomerHandlerTestSuite) TestGetCustomer() {
	customer := database.CreateTestCustomer(s.T(), s.db)

	c, rec := s.jsonContext(http.MethodGet, "/", "")
	c.SetParamNames("customerId")
	c.SetParamValues(customer.ID.String())

	s.NoError(s.handler.GetCustomer(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *CustomerHandlerTestSuite) TestGetCustomer_NotFound() {
	c, rec := s.jsonContext(http.MethodGet, "/", "")
	c.SetParamNames("customerId")
	c.SetParamValues(uuid.New().String())

	s.NoError(s.handler.GetCustomer(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(errors.CustomerNotFound), s.decodeError(rec).Error.Code)
}

func (s *CustomerHandlerTestSuite) TestGetCustomer_InvalidID() {
	c, rec := s.jsonContext(http.MethodGet, "/", "")
	c.SetParamNames("customerId")
	c.SetParamValues("garbage")

	s.NoError(s.handler.GetCustomer(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.CustomerInvalidID), s.decodeError(rec).Error.Code)
}

func (s *CustomerHandlerTestSuite) TestGetAllCustomers() {
	database.CreateTestCustomer(s.T(), s.db)
	database.CreateTestCustomer(s.T(), s.db)

	c, rec := s.jsonContext(http.MethodGet, "/", "")
	s.NoError(s.handler.GetAllCustomers(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.CustomerListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Len(resp.Customers, 2)
}

func (s *CustomerHandlerTestSuite) TestGetCustomersPaginated() {
	for i := 0; i < 3; i++ {
		database.CreateTestCustomer(s.T(), s.db)
	}

	c, rec := s.jsonContext(http.MethodGet, "/?page=1&size=2", "")
	s.NoError(s.handler.GetCustomersPaginated(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.CustomerListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Len(resp.Customers, 1)
	s.Equal(int64(3), resp.Total)
	s.Equal(1, resp.Page)
}

func (s *CustomerHandlerTestSuite) TestGetFullCustomerData() {
	customer := database.CreateTestCustomer(s.T(), s.db)
	database.CreateTestAccount(s.T(), s.db, customer, models.AccountTypeSaving, decimal.NewFromInt(300))

	c, rec := s.jsonContext(http.MethodGet, "/", "")
	c.SetParamNames("customerId")
	c.SetParamValues(customer.ID.String())

	s.NoError(s.handler.GetFullCustomerData(c))
	s.Equal(http.StatusOK, rec.Code)

	var data services.CustomerData
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &data))
	s.Equal(customer.ID, data.Customer.ID)
	s.Len(data.Accounts, 1)
}

func (s *CustomerHandlerTestSuite) TestUpdateCustomer() {
	customer := database.CreateTestCustomer(s.T(), s.db)

	c, rec := s.jsonContext(http.MethodPatch, "/", `{"last_name":"Renamed"}`)
	c.SetParamNames("customerId")
	c.SetParamValues(customer.ID.String())

	s.NoError(s.handler.UpdateCustomer(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.CustomerResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("Renamed", resp.Customer.LastName)
}

func (s *CustomerHandlerTestSuite) TestDeleteCustomer() {
	customer := database.CreateTestCustomer(s.T(), s.db)

	c, rec := s.jsonContext(http.MethodDelete, "/", "")
	c.SetParamNames("customerId")
	c.SetParamValues(customer.ID.String())

	s.NoError(s.handler.DeleteCustomer(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *CustomerHandlerTestSuite) TestDeleteCustomer_NotFound() {
	c, rec := s.jsonContext(http.MethodDelete, "/", "")
	c.SetParamNames("customerId")
	c.SetParamValues(uuid.New().String())

	s.NoError(s.handler.DeleteCustomer(c))
	s.Equal(http.StatusNotFound, rec.Code)
}
