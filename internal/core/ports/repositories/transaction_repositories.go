package repositories

import (
	"context"
	"time"

	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
)

// TransactionReader defines read operations for standalone transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a token-paginated list of transactions, newest first.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByAccountID retrieves a token-paginated list of transactions
	// against a specific account.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for standalone transaction data.
type TransactionWriter interface {
	// CreateTransaction persists the transaction in PENDING, allocating its reference
	// inside the same database transaction. Returns the allocated reference.
	CreateTransaction(ctx context.Context, txn domain.Transaction) (string, error)

	// ApproveTransaction transitions a PENDING transaction to APPROVED under the
	// transaction and account row locks, applying the signed amount to the account
	// balance exactly once. A transaction that is already APPROVED fails with
	// ErrAlreadyApproved; any other non-pending status fails with ErrInvalidState.
	ApproveTransaction(ctx context.Context, transactionID string, approverID string, now time.Time) error

	// SetTransactionStatus performs a compare-and-swap status transition with no
	// ledger effect (reject, cancel).
	SetTransactionStatus(ctx context.Context, transactionID string, expected domain.TransactionStatus, next domain.TransactionStatus, userID string, now time.Time) error

	// UpdateTransaction updates the mutable fields of a PENDING transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a PENDING transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
