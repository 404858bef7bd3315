package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidEmail  ErrorCode = "VALIDATION_005"
)

// Customer error codes (CUSTOMER_*)
const (
	CustomerNotFound      ErrorCode = "CUSTOMER_001"
	CustomerAlreadyExists ErrorCode = "CUSTOMER_002"
	CustomerInvalidID     ErrorCode = "CUSTOMER_003"
	CustomerNoResults     ErrorCode = "CUSTOMER_004"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound            ErrorCode = "ACCOUNT_001"
	AccountInsufficientBalance ErrorCode = "ACCOUNT_002"
	AccountMissingLimit        ErrorCode = "ACCOUNT_003"
	AccountReferenceExists     ErrorCode = "ACCOUNT_004"
	AccountReferenceExhausted  ErrorCode = "ACCOUNT_005"
	AccountInvalidID           ErrorCode = "ACCOUNT_006"
)

// Operation error codes (OPERATION_*)
const (
	OperationNotFound      ErrorCode = "OPERATION_001"
	OperationInvalidAmount ErrorCode = "OPERATION_002"
)

// Transfer error codes (TRANSFER_*)
const (
	TransferSameAccount       ErrorCode = "TRANSFER_001"
	TransferInvalidAmount     ErrorCode = "TRANSFER_002"
	TransferInsufficientFunds ErrorCode = "TRANSFER_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidEmail:  "Invalid email address format",

	// Customer errors
	CustomerNotFound:      "Customer not found",
	CustomerAlreadyExists: "A customer with this email already exists",
	CustomerInvalidID:     "Invalid customer ID format",
	CustomerNoResults:     "No customers found",

	// Account errors
	AccountNotFound:            "Account not found",
	AccountInsufficientBalance: "Insufficient account balance",
	AccountMissingLimit:        "Account is missing its type-specific limit",
	AccountReferenceExists:     "An account with this RIB already exists",
	AccountReferenceExhausted:  "Could not allocate a unique RIB",
	AccountInvalidID:           "Invalid account ID format",

	// Operation errors
	OperationNotFound:      "Operation not found",
	OperationInvalidAmount: "Operation amount must be positive",

	// Transfer errors
	TransferSameAccount:       "Cannot transfer to the same account",
	TransferInvalidAmount:     "Invalid transfer amount",
	TransferInsufficientFunds: "Insufficient balance on the source account",

	// System errors
	SystemInternalError:      "An internal error occurred",
	SystemDatabaseError:      "A database error occurred",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Too many requests, please retry later",
	SystemUnexpectedError:    "An unexpected error occurred",
}

// GetErrorMessage returns the default message for an error code
func GetErrorMessage(code ErrorCode) string {
	if message, ok := errorMessages[code]; ok {
		return message
	}
	return errorMessages[SystemUnexpectedError]
}
