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

// Service-level sentinels wrap the apperrors categories so handlers map them to
// HTTP statuses without knowing the specific precondition that failed.
var (
	ErrAccountInactive    = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	ErrSystemAccount      = fmt.Errorf("%w: system accounts cannot be deactivated", apperrors.ErrInvalidState)
	ErrAccountHasPostings = fmt.Errorf("%w: accounts with postings cannot be deactivated", apperrors.ErrInvalidState)
)

// accountService provides the account ledger operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	auditSvc    portssvc.AuditSvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, auditSvc portssvc.AuditSvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new ledger account. Balance starts at the opening balance.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		Code:           req.Code,
		Name:           req.Name,
		AccountType:    domain.AccountType(req.AccountType),
		Category:       req.Category,
		Description:    req.Description,
		OpeningBalance: req.OpeningBalance,
		Balance:        req.OpeningBalance,
		IsActive:       true,
		IsSystem:       false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("code", req.Code), slog.String("error", err.Error()))
		return nil, err
	}

	s.auditSvc.Record(ctx, "account", account.AccountID, domain.AuditCreated, creatorUserID,
		fmt.Sprintf("account %s (%s) created", account.Code, account.Name))

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// UpdateAccount updates the mutable fields of an account. Code, type and opening
// balance are immutable after creation.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Category != nil {
		account.Category = *req.Category
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, err
	}

	s.auditSvc.Record(ctx, "account", accountID, domain.AuditUpdated, userID,
		fmt.Sprintf("account %s updated", account.Code))

	return account, nil
}

// DeactivateAccount soft-deletes an account. System accounts and accounts with any
// posting history are refused: postings must keep resolving to a live account row.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.IsSystem {
		return fmt.Errorf("%w: %s", ErrSystemAccount, account.Code)
	}

	postings, err := s.accountRepo.CountPostings(ctx, accountID)
	if err != nil {
		return err
	}
	if postings > 0 {
		return fmt.Errorf("%w: %s has %d postings", ErrAccountHasPostings, account.Code, postings)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return err
	}

	s.auditSvc.Record(ctx, "account", accountID, domain.AuditDeleted, userID,
		fmt.Sprintf("account %s deactivated", account.Code))

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// RecomputeBalance re-derives the cached balance from posting history. The account
// row stays locked for the duration so postings in flight cannot interleave.
func (s *accountService) RecomputeBalance(ctx context.Context, accountID string, userID string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	balance, err := s.accountRepo.RecomputeBalance(ctx, accountID, userID, time.Now().UTC())
	if err != nil {
		metrics.BalanceRecomputes.WithLabelValues("error").Inc()
		if errors.Is(err, apperrors.ErrLockTimeout) {
			metrics.LockTimeouts.WithLabelValues("recompute_balance").Inc()
		}
		logger.Error("Failed to recompute account balance", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return decimal.Zero, err
	}

	metrics.BalanceRecomputes.WithLabelValues("ok").Inc()
	s.auditSvc.Record(ctx, "account", accountID, domain.AuditUpdated, userID,
		fmt.Sprintf("balance recomputed to %s", balance.String()))

	logger.Info("Account balance recomputed", slog.String("account_id", accountID), slog.String("balance", balance.String()))
	return balance, nil
}
