package services

import (
	"context"

	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	"github.com/rukibhamz/erpsolution-sub001/internal/dto"
)

// TransactionSvcFacade defines the standalone transaction workflow operations.
type TransactionSvcFacade interface {
	// CreateTransaction persists a PENDING transaction with a freshly allocated reference.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ApproveTransaction transitions PENDING -> APPROVED and applies the signed amount
	// to the account exactly once. A second approval fails with ErrAlreadyApproved.
	ApproveTransaction(ctx context.Context, transactionID string, approverUserID string) error

	// RejectTransaction transitions PENDING -> REJECTED with no ledger effect.
	RejectTransaction(ctx context.Context, transactionID string, userID string) error

	// CancelTransaction cancels a not-yet-terminal transaction with no ledger effect.
	// Approved transactions cannot be cancelled; reversal takes a new adjusting transaction.
	CancelTransaction(ctx context.Context, transactionID string, userID string) error

	// UpdateTransaction edits a PENDING transaction.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction removes a PENDING transaction.
	DeleteTransaction(ctx context.Context, transactionID string, userID string) error
}
