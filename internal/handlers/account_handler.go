package handlers

import (
	"context"
	"net/http"

	"financial-tracking/internal/dto"
	"financial-tracking/internal/errors"
	"financial-tracking/internal/models"
	"financial-tracking/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// applyFunc is the shape shared by TransactionService.Debit and Credit
type applyFunc func(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Operation, error)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService     services.AccountServiceInterface
	transactionService services.TransactionServiceInterface
	customerService    services.CustomerServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService services.AccountServiceInterface, transactionService services.TransactionServiceInterface, customerService services.CustomerServiceInterface) *AccountHandler {
	return &AccountHandler{
		accountService:     accountService,
		transactionService: transactionService,
		customerService:    customerService,
	}
}

// CreateCurrentAccount opens a current account for a customer
// @Summary Create a current account
// @Description Open a current account with a mandatory overdraft limit
// @Tags Accounts
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID (UUID)"
// @Param request body dto.CreateCurrentAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse "Account created successfully"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 404 {object} errors.ErrorResponse "CUSTOMER_001 - Customer not found"
// @Failure 409 {object} errors.ErrorResponse "ACCOUNT_004 - RIB already in use"
// @Failure 422 {object} errors.ErrorResponse "ACCOUNT_003 - Missing overdraft limit"
// @Router /accounts/{customerId}/current-account [post]
func (h *AccountHandler) CreateCurrentAccount(c echo.Context) error {
	customerID, err := getUUIDParam(c, "customerId")
	if err != nil {
		return SendError(c, errors.CustomerInvalidID, errors.WithDetails("Invalid customer ID"))
	}

	var req dto.CreateCurrentAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	spec := services.AccountSpec{RIB: req.RIB}

	limit, err := decimal.NewFromString(req.OverdraftLimit)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid overdraft limit"))
	}
	spec.OverdraftLimit = &limit

	if req.Balance != "" {
		balance, err := decimal.NewFromString(req.Balance)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid balance"))
		}
		spec.Balance = &balance
	}

	account, err := h.accountService.CreateCurrentAccount(customerID, spec)
	if err != nil {
		return h.sendCreateAccountError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.AccountResponse{
		Account: account,
		Message: "Current account created successfully",
	})
}

// CreateSavingAccount opens a saving account for a customer
// @Summary Create a saving account
// @Description Open a saving account with a mandatory interest rate
// @Tags Accounts
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID (UUID)"
// @Param request body dto.CreateSavingAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse "Account created successfully"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 404 {object} errors.ErrorResponse "CUSTOMER_001 - Customer not found"
// @Failure 409 {object} errors.ErrorResponse "ACCOUNT_004 - RIB already in use"
// @Failure 422 {object} errors.ErrorResponse "ACCOUNT_003 - Missing interest rate"
// @Router /accounts/{customerId}/saving-account [post]
func (h *AccountHandler) CreateSavingAccount(c echo.Context) error {
	customerID, err := getUUIDParam(c, "customerId")
	if err != nil {
		return SendError(c, errors.CustomerInvalidID, errors.WithDetails("Invalid customer ID"))
	}

	var req dto.CreateSavingAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	spec := services.AccountSpec{RIB: req.RIB}

	rate, err := decimal.NewFromString(req.InterestRate)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid interest rate"))
	}
	spec.InterestRate = &rate

	if req.Balance != "" {
		balance, err := decimal.NewFromString(req.Balance)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid balance"))
		}
		spec.Balance = &balance
	}

	account, err := h.accountService.CreateSavingAccount(customerID, spec)
	if err != nil {
		return h.sendCreateAccountError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.AccountResponse{
		Account: account,
		Message: "Saving account created successfully",
	})
}

func (h *AccountHandler) sendCreateAccountError(c echo.Context, err error) error {
	switch err {
	case services.ErrCustomerNotFound:
		return SendError(c, errors.CustomerNotFound)
	case services.ErrMissingOverdraftLimit, services.ErrMissingInterestRate:
		return SendError(c, errors.AccountMissingLimit, errors.WithDetails(err.Error()))
	case services.ErrNegativeAccountLimit:
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
	case services.ErrRIBExists:
		return SendError(c, errors.AccountReferenceExists)
	case services.ErrRIBExhausted:
		return SendError(c, errors.AccountReferenceExhausted)
	default:
		return SendSystemError(c, err)
	}
}

// GetAccount retrieves a specific account by ID
// @Summary Get account by ID
// @Tags Accounts
// @Produce json
// @Param accountId path string true "Account ID (UUID)"
// @Success 200 {object} models.Account "Account details"
// @Failure 400 {object} errors.ErrorResponse "ACCOUNT_006 - Invalid account ID format"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{accountId} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	accountID, err := getUUIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.AccountInvalidID, errors.WithDetails("Invalid account ID"))
	}

	account, err := h.accountService.GetAccountByID(accountID)
	if err != nil {
		if err == services.ErrAccountNotFound {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, account)
}

// GetAllAccounts lists every account, unpaginated
// @Summary List all accounts
// @Tags Accounts
// @Produce json
// @Success 200 {object} dto.AccountListResponse "All accounts"
// @Router /accounts/all [get]
func (h *AccountHandler) GetAllAccounts(c echo.Context) error {
	accounts, err := h.accountService.GetAllAccounts()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AccountListResponse{
		Accounts: accounts,
		Total:    int64(len(accounts)),
	})
}

// GetAccountsPaginated lists accounts one page at a time
// @Summary List accounts (paginated)
// @Tags Accounts
// @Produce json
// @Param page query int false "Page number (0-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.AccountListResponse "Page of accounts"
// @Router /accounts [get]
func (h *AccountHandler) GetAccountsPaginated(c echo.Context) error {
	page := getIntParam(c, "page", 0)
	size := getIntParam(c, "size", 10)

	accounts, total, err := h.accountService.GetAccountsPage(page, size)
	if err != nil {
		if err == services.ErrInvalidPagination {
			return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AccountListResponse{
		Accounts: accounts,
		Total:    total,
		Page:     page,
		Size:     size,
	})
}

// GetAccountOperations returns the full ledger of an account, newest first
// @Summary List account operations
// @Tags Accounts
// @Produce json
// @Param accountId path string true "Account ID (UUID)"
// @Success 200 {object} dto.OperationListResponse "Operations"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{accountId}/operations [get]
func (h *AccountHandler) GetAccountOperations(c echo.Context) error {
	accountID, err := getUUIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.AccountInvalidID, errors.WithDetails("Invalid account ID"))
	}

	operations, err := h.transactionService.GetAccountOperations(accountID)
	if err != nil {
		if err == services.ErrAccountNotFound {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.OperationListResponse{
		Operations: operations,
		Total:      int64(len(operations)),
	})
}

// GetAccountHistory returns one page of an account's ledger with the
// statement header (holder name, current balance, paging totals)
// @Summary Get account history
// @Tags Accounts
// @Produce json
// @Param accountId path string true "Account ID (UUID)"
// @Param page query int false "Page number (0-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.AccountHistoryResponse "Account history page"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{accountId}/history [get]
func (h *AccountHandler) GetAccountHistory(c echo.Context) error {
	accountID, err := getUUIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.AccountInvalidID, errors.WithDetails("Invalid account ID"))
	}

	page := getIntParam(c, "page", 0)
	size := getIntParam(c, "size", 5)

	account, err := h.accountService.GetAccountByID(accountID)
	if err != nil {
		if err == services.ErrAccountNotFound {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	operations, total, err := h.transactionService.GetAccountOperationsPage(accountID, page, size)
	if err != nil {
		if err == services.ErrInvalidPagination {
			return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	holderName := ""
	if customer, err := h.customerService.GetCustomerByID(account.CustomerID); err == nil {
		holderName = customer.FullName()
	}

	totalPages := int(total) / size
	if int(total)%size != 0 {
		totalPages++
	}

	return c.JSON(http.StatusOK, dto.AccountHistoryResponse{
		AccountID:         account.ID.String(),
		AccountHolderName: holderName,
		Balance:           account.Balance,
		Operations:        operations,
		CurrentPage:       page,
		TotalPages:        totalPages,
		PageSize:          size,
		TotalElements:     total,
	})
}

// Debit withdraws an amount from an account
// @Summary Debit an account
// @Tags Operations
// @Accept json
// @Produce json
// @Param accountId path string true "Account ID (UUID)"
// @Param request body dto.OperationRequest true "Debit details"
// @Success 201 {object} models.Operation "Recorded operation"
// @Failure 400 {object} errors.ErrorResponse "OPERATION_002 - Invalid amount"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 422 {object} errors.ErrorResponse "ACCOUNT_002 - Insufficient balance"
// @Router /accounts/{accountId}/debit [post]
func (h *AccountHandler) Debit(c echo.Context) error {
	return h.applyOperation(c, h.transactionService.Debit)
}

// Credit deposits an amount into an account
// @Summary Credit an account
// @Tags Operations
// @Accept json
// @Produce json
// @Param accountId path string true "Account ID (UUID)"
// @Param request body dto.OperationRequest true "Credit details"
// @Success 201 {object} models.Operation "Recorded operation"
// @Failure 400 {object} errors.ErrorResponse "OPERATION_002 - Invalid amount"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{accountId}/credit [post]
func (h *AccountHandler) Credit(c echo.Context) error {
	return h.applyOperation(c, h.transactionService.Credit)
}

func (h *AccountHandler) applyOperation(c echo.Context, apply applyFunc) error {
	accountID, err := getUUIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.AccountInvalidID, errors.WithDetails("Invalid account ID"))
	}

	var req dto.OperationRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, errors.OperationInvalidAmount, errors.WithDetails("Invalid amount"))
	}

	operation, err := apply(c.Request().Context(), accountID, amount, req.Description)
	if err != nil {
		switch err {
		case services.ErrAccountNotFound:
			return SendError(c, errors.AccountNotFound)
		case services.ErrInvalidAmount:
			return SendError(c, errors.OperationInvalidAmount, errors.WithDetails(err.Error()))
		case services.ErrInsufficientFunds:
			return SendError(c, errors.AccountInsufficientBalance)
		case services.ErrOperationNumberExhausted:
			return SendError(c, errors.AccountReferenceExhausted, errors.WithMessage(err.Error()))
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, operation)
}

// Transfer moves an amount between two accounts atomically
// @Summary Transfer between accounts
// @Tags Operations
// @Accept json
// @Produce json
// @Param request body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.MessageResponse "Transfer completed"
// @Failure 400 {object} errors.ErrorResponse "TRANSFER_001 - Same account transfer"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 422 {object} errors.ErrorResponse "TRANSFER_003 - Insufficient funds"
// @Router /accounts/transfer [post]
func (h *AccountHandler) Transfer(c echo.Context) error {
	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	sourceID, err := uuid.Parse(req.SourceAccountID)
	if err != nil {
		return SendError(c, errors.AccountInvalidID, errors.WithDetails("Invalid source account ID"))
	}
	destinationID, err := uuid.Parse(req.DestinationAccountID)
	if err != nil {
		return SendError(c, errors.AccountInvalidID, errors.WithDetails("Invalid destination account ID"))
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, errors.TransferInvalidAmount, errors.WithDetails("Invalid amount"))
	}

	if err := h.transactionService.Transfer(c.Request().Context(), sourceID, destinationID, amount); err != nil {
		switch err {
		case services.ErrAccountNotFound:
			return SendError(c, errors.AccountNotFound)
		case services.ErrSameAccountTransfer:
			return SendError(c, errors.TransferSameAccount)
		case services.ErrInvalidAmount:
			return SendError(c, errors.TransferInvalidAmount, errors.WithDetails(err.Error()))
		case services.ErrInsufficientFunds:
			return SendError(c, errors.TransferInsufficientFunds)
		case services.ErrOperationNumberExhausted:
			return SendError(c, errors.AccountReferenceExhausted, errors.WithMessage(err.Error()))
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Transfer completed successfully"})
}
