package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"financial-tracking/internal/models"
	"financial-tracking/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAccountID         = errors.New("account ID must not be empty")
	ErrInvalidAmount            = errors.New("amount must be greater than zero")
	ErrSameAccountTransfer      = errors.New("source account must be different from destination account")
	ErrInsufficientFunds        = errors.New("insufficient balance for a debit operation")
	ErrOperationNumberExhausted = errors.New("could not allocate a unique operation number within the retry budget")
)

// transactionService implements TransactionServiceInterface. Each mutation
// holds the account lock for the whole read-check-write and commits the
// balance change together with its ledger entry in one storage transaction,
// so a balance never moves without an operation recording it.
type transactionService struct {
	accountRepo   repositories.AccountRepositoryInterface
	operationRepo repositories.OperationRepositoryInterface
	locks         *accountLocks
	metrics       MetricsRecorderInterface
	logger        *slog.Logger

	rngMu          sync.Mutex
	rng            *rand.Rand
	numMaxAttempts int
}

// NewTransactionService creates the transaction engine
func NewTransactionService(
	accountRepo repositories.AccountRepositoryInterface,
	operationRepo repositories.OperationRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
	rng *rand.Rand,
	numMaxAttempts int,
) TransactionServiceInterface {
	return &transactionService{
		accountRepo:    accountRepo,
		operationRepo:  operationRepo,
		locks:          newAccountLocks(),
		metrics:        metrics,
		logger:         logger,
		rng:            rng,
		numMaxAttempts: numMaxAttempts,
	}
}

// Debit withdraws amount from the account. The debit fails with
// ErrInsufficientFunds if the resulting balance would drop below the
// account's own minimum: zero for a saving account, the negated overdraft
// limit for a current account.
func (s *transactionService) Debit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Operation, error) {
	started := time.Now()
	operation, err := s.applyOperation(ctx, accountID, amount, description, models.OperationTypeDebit)
	s.metrics.RecordOperation(models.OperationTypeDebit, statusLabel(err), time.Since(started))
	return operation, err
}

// Credit deposits amount into the account. There is no upper bound on the
// resulting balance.
func (s *transactionService) Credit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Operation, error) {
	started := time.Now()
	operation, err := s.applyOperation(ctx, accountID, amount, description, models.OperationTypeCredit)
	s.metrics.RecordOperation(models.OperationTypeCredit, statusLabel(err), time.Since(started))
	return operation, err
}

func (s *transactionService) applyOperation(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description, operationType string) (*models.Operation, error) {
	if accountID == uuid.Nil {
		s.logger.Warn("operation with empty account ID", "type", operationType)
		return nil, ErrInvalidAccountID
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		s.logger.Warn("operation with non-positive amount",
			"account_id", accountID, "amount", amount, "type", operationType)
		return nil, ErrInvalidAmount
	}

	release := s.locks.Acquire(accountID)
	defer release()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	account, err := s.resolveAccount(accountID)
	if err != nil {
		return nil, err
	}

	oldBalance := account.Balance
	var newBalance decimal.Decimal
	if operationType == models.OperationTypeDebit {
		if !account.CanDebit(amount) {
			s.logger.Warn("debit would breach the minimum balance",
				"account_id", accountID,
				"balance", oldBalance,
				"amount", amount,
				"minimum", account.MinimumBalance())
			return nil, ErrInsufficientFunds
		}
		newBalance = oldBalance.Sub(amount)
	} else {
		newBalance = oldBalance.Add(amount)
	}

	operation, err := s.buildOperation(account.ID, operationType, amount, description)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.ApplyBalanceMutation(ctx, repositories.BalanceMutation{
		Account:    account,
		NewBalance: newBalance,
		Operation:  operation,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("operation completed",
		"type", operationType,
		"account_id", accountID,
		"amount", amount,
		"old_balance", oldBalance,
		"new_balance", newBalance,
		"operation_number", operation.OperationNumber,
		"rib", account.RIB)

	return operation, nil
}

// Transfer moves amount from the source account to the destination as one
// atomic unit: either both legs commit with their operations recorded, or
// neither balance changes. Account locks are taken in a deterministic order
// so opposing transfers over the same pair cannot deadlock.
func (s *transactionService) Transfer(ctx context.Context, sourceID, destinationID uuid.UUID, amount decimal.Decimal) error {
	started := time.Now()
	err := s.transfer(ctx, sourceID, destinationID, amount)
	s.metrics.RecordTransfer(statusLabel(err), time.Since(started), amount)
	return err
}

func (s *transactionService) transfer(ctx context.Context, sourceID, destinationID uuid.UUID, amount decimal.Decimal) error {
	if sourceID == uuid.Nil || destinationID == uuid.Nil {
		return ErrInvalidAccountID
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if sourceID == destinationID {
		s.logger.Warn("attempt to transfer to the same account", "account_id", sourceID)
		return ErrSameAccountTransfer
	}

	release := s.locks.Acquire(sourceID, destinationID)
	defer release()

	if err := ctx.Err(); err != nil {
		return err
	}

	source, err := s.resolveAccount(sourceID)
	if err != nil {
		return err
	}
	destination, err := s.resolveAccount(destinationID)
	if err != nil {
		return err
	}

	if !source.CanDebit(amount) {
		s.logger.Warn("transfer would breach the source minimum balance",
			"source_id", sourceID,
			"balance", source.Balance,
			"amount", amount)
		return ErrInsufficientFunds
	}

	// Both legs carry the same generated description, regardless of any
	// caller-supplied text.
	description := fmt.Sprintf("Transfer from %s to %s", sourceID, destinationID)

	debitOp, err := s.buildOperation(source.ID, models.OperationTypeDebit, amount, description)
	if err != nil {
		return err
	}
	creditOp, err := s.buildOperation(destination.ID, models.OperationTypeCredit, amount, description)
	if err != nil {
		return err
	}

	err = s.accountRepo.ApplyTransfer(ctx,
		repositories.BalanceMutation{
			Account:    source,
			NewBalance: source.Balance.Sub(amount),
			Operation:  debitOp,
		},
		repositories.BalanceMutation{
			Account:    destination,
			NewBalance: destination.Balance.Add(amount),
			Operation:  creditOp,
		})
	if err != nil {
		return err
	}

	s.logger.Info("transfer completed",
		"source_id", sourceID,
		"destination_id", destinationID,
		"amount", amount)

	return nil
}

// GetAccountOperations returns the account's full history, newest first
func (s *transactionService) GetAccountOperations(accountID uuid.UUID) ([]models.Operation, error) {
	if accountID == uuid.Nil {
		return nil, ErrInvalidAccountID
	}
	if _, err := s.resolveAccount(accountID); err != nil {
		return nil, err
	}

	operations, err := s.operationRepo.ListAllByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	return operations, nil
}

// GetAccountOperationsPage returns one page of the account's history,
// newest first
func (s *transactionService) GetAccountOperationsPage(accountID uuid.UUID, page, size int) ([]models.Operation, int64, error) {
	if accountID == uuid.Nil {
		return nil, 0, ErrInvalidAccountID
	}
	if page < 0 || size <= 0 {
		return nil, 0, ErrInvalidPagination
	}
	if _, err := s.resolveAccount(accountID); err != nil {
		return nil, 0, err
	}

	operations, total, err := s.operationRepo.ListByAccount(accountID, page*size, size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list operations: %w", err)
	}
	return operations, total, nil
}

func (s *transactionService) resolveAccount(accountID uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			s.logger.Warn("attempt to use non-existent account", "account_id", accountID)
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}
	return account, nil
}

// buildOperation assembles a ledger entry with a fresh collision-checked
// operation number.
func (s *transactionService) buildOperation(accountID uuid.UUID, operationType string, amount decimal.Decimal, description string) (*models.Operation, error) {
	if strings.TrimSpace(description) == "" {
		description = models.DefaultDescription(operationType)
	}

	number, err := s.generateOperationNumber()
	if err != nil {
		return nil, err
	}

	return &models.Operation{
		OperationNumber: number,
		AccountID:       accountID,
		OperationType:   operationType,
		Amount:          amount,
		Description:     description,
		OperationDate:   time.Now(),
	}, nil
}

func (s *transactionService) generateOperationNumber() (string, error) {
	for i := 0; i < s.numMaxAttempts; i++ {
		s.rngMu.Lock()
		number := models.GenerateOperationNumber(s.rng, time.Now())
		s.rngMu.Unlock()

		exists, err := s.operationRepo.ExistsByNumber(number)
		if err != nil {
			return "", fmt.Errorf("failed to check operation number uniqueness: %w", err)
		}
		if !exists {
			return number, nil
		}
	}

	s.logger.Error("operation number budget exhausted", "attempts", s.numMaxAttempts)
	return "", ErrOperationNumberExhausted
}

func statusLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
