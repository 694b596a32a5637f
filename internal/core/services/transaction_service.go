package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rukibhamz/erpsolution-sub001/internal/apperrors"
	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	portsrepo "github.com/rukibhamz/erpsolution-sub001/internal/core/ports/repositories"
	portssvc "github.com/rukibhamz/erpsolution-sub001/internal/core/ports/services"
	"github.com/rukibhamz/erpsolution-sub001/internal/dto"
	"github.com/rukibhamz/erpsolution-sub001/internal/middleware"
	"github.com/rukibhamz/erpsolution-sub001/internal/platform/metrics"
)

var ErrZeroAmount = fmt.Errorf("%w: transaction amount must not be zero", apperrors.ErrValidation)

// transactionService provides the standalone transaction workflow operations.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountSvc      portssvc.AccountSvcFacade
	auditSvc        portssvc.AuditSvcFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, accountSvc portssvc.AccountSvcFacade, auditSvc portssvc.AuditSvcFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountSvc:      accountSvc,
		auditSvc:        auditSvc,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// signedAmount normalizes the request amount to the stored signed convention:
// INCOME is stored positive and EXPENSE negative, both supplied as positive
// magnitudes; TRANSFER and ADJUSTMENT are stored exactly as supplied.
func signedAmount(transactionType domain.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsZero() {
		return decimal.Zero, ErrZeroAmount
	}
	switch transactionType {
	case domain.Income:
		if amount.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: income amount must be positive", apperrors.ErrValidation)
		}
		return amount, nil
	case domain.ExpenseTxn:
		if amount.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: expense amount must be supplied positive", apperrors.ErrValidation)
		}
		return amount.Neg(), nil
	case domain.Transfer, domain.Adjustment:
		return amount, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown transaction type %s", apperrors.ErrValidation, transactionType)
	}
}

// CreateTransaction persists a PENDING transaction with a freshly allocated reference.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountSvc.GetAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrAccountInactive, account.Code)
	}

	transactionType := domain.TransactionType(req.TransactionType)
	amount, err := signedAmount(transactionType, req.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       req.AccountID,
		TransactionType: transactionType,
		Amount:          amount,
		TransactionDate: req.Date,
		Category:        req.Category,
		SubCategory:     req.SubCategory,
		PaymentMethod:   req.PaymentMethod,
		Description:     req.Description,
		Status:          domain.TxnPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	reference, err := s.transactionRepo.CreateTransaction(ctx, txn)
	if err != nil {
		logger.Error("Failed to create transaction", slog.String("error", err.Error()))
		return nil, err
	}
	txn.Reference = reference

	s.auditSvc.Record(ctx, "transaction", txn.TransactionID, domain.AuditCreated, creatorUserID,
		fmt.Sprintf("transaction %s created pending", reference))

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("reference", reference))
	return &txn, nil
}

// GetTransactionByID retrieves a single transaction.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.transactionRepo.FindTransactionByID(ctx, transactionID)
}

// ListTransactions retrieves a token-paginated page of transactions, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := clampListLimit(params.Limit)
	txns, nextToken, err := s.transactionRepo.ListTransactions(ctx, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// ListTransactionsByAccount retrieves a token-paginated page of transactions
// against a specific account.
func (s *transactionService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	limit := clampListLimit(params.Limit)
	txns, nextToken, err := s.transactionRepo.ListTransactionsByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

func clampListLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}

// ApproveTransaction transitions PENDING -> APPROVED and applies the signed amount
// to the account exactly once. The repository holds the transaction and account
// rows locked for the whole operation, so concurrent approvals serialize and the
// loser sees ErrAlreadyApproved.
func (s *transactionService) ApproveTransaction(ctx context.Context, transactionID string, approverUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.transactionRepo.ApproveTransaction(ctx, transactionID, approverUserID, time.Now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrLockTimeout) {
			metrics.LockTimeouts.WithLabelValues("approve_transaction").Inc()
		}
		logger.Error("Failed to approve transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return err
	}

	metrics.TransactionsApproved.Inc()
	s.auditSvc.Record(ctx, "transaction", transactionID, domain.AuditApproved, approverUserID, "transaction approved")

	logger.Info("Transaction approved", slog.String("transaction_id", transactionID))
	return nil
}

// RejectTransaction transitions PENDING -> REJECTED with no ledger effect.
func (s *transactionService) RejectTransaction(ctx context.Context, transactionID string, userID string) error {
	if err := s.transactionRepo.SetTransactionStatus(ctx, transactionID, domain.TxnPending, domain.TxnRejected, userID, time.Now().UTC()); err != nil {
		return err
	}
	s.auditSvc.Record(ctx, "transaction", transactionID, domain.AuditRejected, userID, "transaction rejected")
	return nil
}

// CancelTransaction transitions PENDING -> CANCELLED with no ledger effect.
// Approved transactions cannot be cancelled; reversal takes a new adjusting
// transaction instead.
func (s *transactionService) CancelTransaction(ctx context.Context, transactionID string, userID string) error {
	if err := s.transactionRepo.SetTransactionStatus(ctx, transactionID, domain.TxnPending, domain.TxnCancelled, userID, time.Now().UTC()); err != nil {
		return err
	}
	s.auditSvc.Record(ctx, "transaction", transactionID, domain.AuditCancelled, userID, "transaction cancelled")
	return nil
}

// UpdateTransaction edits a PENDING transaction. The repository refuses the write
// if the transaction has left PENDING in the meantime.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.TxnPending {
		return nil, fmt.Errorf("%w: transaction %s is %s", apperrors.ErrInvalidState, txn.Reference, txn.Status)
	}

	if req.Amount != nil {
		amount, err := signedAmount(txn.TransactionType, *req.Amount)
		if err != nil {
			return nil, err
		}
		txn.Amount = amount
	}
	if req.Date != nil {
		txn.TransactionDate = *req.Date
	}
	if req.Category != nil {
		txn.Category = *req.Category
	}
	if req.SubCategory != nil {
		txn.SubCategory = *req.SubCategory
	}
	if req.PaymentMethod != nil {
		txn.PaymentMethod = *req.PaymentMethod
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	txn.LastUpdatedAt = time.Now().UTC()
	txn.LastUpdatedBy = userID

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		logger.Error("Failed to update transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, err
	}

	s.auditSvc.Record(ctx, "transaction", transactionID, domain.AuditUpdated, userID,
		fmt.Sprintf("transaction %s updated", txn.Reference))

	return txn, nil
}

// DeleteTransaction removes a PENDING transaction.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		logger.Error("Failed to delete transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return err
	}

	s.auditSvc.Record(ctx, "transaction", transactionID, domain.AuditDeleted, userID, "pending transaction deleted")
	return nil
}
