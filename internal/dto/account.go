package dto

import (
	"financial-tracking/internal/models"

	"github.com/shopspring/decimal"
)

// Account request DTOs. Amounts travel as strings and are parsed into
// decimals by the handlers, so no float ever touches a balance.

// CreateCurrentAccountRequest is the payload for opening a current account
type CreateCurrentAccountRequest struct {
	OverdraftLimit string `json:"overdraft_limit" validate:"required"`
	Balance        string `json:"balance,omitempty"`
	RIB            string `json:"rib,omitempty" validate:"omitempty,max=40"`
}

// CreateSavingAccountRequest is the payload for opening a saving account
type CreateSavingAccountRequest struct {
	InterestRate string `json:"interest_rate" validate:"required"`
	Balance      string `json:"balance,omitempty"`
	RIB          string `json:"rib,omitempty" validate:"omitempty,max=40"`
}

// OperationRequest is the payload for a debit or credit
type OperationRequest struct {
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description,omitempty" validate:"omitempty,max=255"`
}

// TransferRequest is the payload for an account-to-account transfer
type TransferRequest struct {
	SourceAccountID      string `json:"source_account_id" validate:"required,uuid"`
	DestinationAccountID string `json:"destination_account_id" validate:"required,uuid"`
	Amount               string `json:"amount" validate:"required"`
}

// Account response DTOs

// AccountResponse wraps a created account
type AccountResponse struct {
	Account *models.Account `json:"account"`
	Message string          `json:"message,omitempty"`
}

// AccountListResponse is a paginated list of accounts
type AccountListResponse struct {
	Accounts []models.Account `json:"accounts"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Size     int              `json:"size"`
}

// OperationListResponse is a list of ledger operations
type OperationListResponse struct {
	Operations []models.Operation `json:"operations"`
	Total      int64              `json:"total,omitempty"`
}

// AccountHistoryResponse is one page of an account's ledger together with
// the account header the statement view renders
type AccountHistoryResponse struct {
	AccountID         string             `json:"account_id"`
	AccountHolderName string             `json:"account_holder_name"`
	Balance           decimal.Decimal    `json:"balance"`
	Operations        []models.Operation `json:"operations"`
	CurrentPage       int                `json:"current_page"`
	TotalPages        int                `json:"total_pages"`
	PageSize          int                `json:"page_size"`
	TotalElements     int64              `json:"total_elements"`
}

// MessageResponse is a simple message payload
type MessageResponse struct {
	Message string `json:"message"`
}
