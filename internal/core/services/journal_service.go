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
	"github.com/rukibhamz/erpsolution-sub001/internal/utils/accounting"
)

var (
	ErrEntryMinAccounts   = fmt.Errorf("%w: entry must affect at least two different accounts", apperrors.ErrValidation)
	ErrDescriptionMissing = fmt.Errorf("%w: entry description is required", apperrors.ErrValidation)
)

// journalService provides the journal entry engine operations.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	auditSvc    portssvc.AuditSvcFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, auditSvc portssvc.AuditSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildItems maps request lines to domain items and validates the double-entry
// invariants. It is used by both creation and line replacement so the two paths
// can never diverge on what counts as a valid line set.
func (s *journalService) buildItems(ctx context.Context, entryID string, lines []dto.CreateJournalItemRequest) ([]domain.JournalItem, decimal.Decimal, decimal.Decimal, error) {
	items := make([]domain.JournalItem, len(lines))
	accountIDs := make([]string, 0, len(lines))
	accountSet := make(map[string]bool)
	for i, line := range lines {
		items[i] = domain.JournalItem{
			ItemID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
		}
		if !accountSet[line.AccountID] {
			accountSet[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	if err := accounting.ValidateEntryItems(items); err != nil {
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if len(accountSet) < 2 {
		return nil, decimal.Zero, decimal.Zero, ErrEntryMinAccounts
	}

	// Every referenced account must exist and be active.
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	for _, accountID := range accountIDs {
		account, found := accounts[accountID]
		if !found {
			return nil, decimal.Zero, decimal.Zero, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		if !account.IsActive {
			return nil, decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s", ErrAccountInactive, account.Code)
		}
	}

	totalDebit, totalCredit := accounting.EntryTotals(items)
	return items, totalDebit, totalCredit, nil
}

// CreateEntry validates the line set and persists the entry in DRAFT with a freshly
// allocated reference.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	items, totalDebit, totalCredit, err := s.buildItems(ctx, entryID, req.Items)
	if err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   req.Date,
		Description: req.Description,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Status:      domain.EntryDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	reference, err := s.journalRepo.CreateEntry(ctx, entry, items)
	if err != nil {
		logger.Error("Failed to create journal entry", slog.String("error", err.Error()))
		return nil, err
	}
	entry.Reference = reference
	entry.Items = items

	s.auditSvc.Record(ctx, "journal_entry", entryID, domain.AuditCreated, creatorUserID,
		fmt.Sprintf("entry %s created in draft", reference))

	logger.Info("Journal entry created", slog.String("entry_id", entryID), slog.String("reference", reference))
	return &entry, nil
}

// GetEntryByID retrieves an entry together with its items.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	items, err := s.journalRepo.FindItemsByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Items = items
	return entry, nil
}

// ListEntries retrieves a token-paginated page of entries, newest first.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListJournalEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return resp, nil
}

// ListItemsByAccount retrieves the posted line items affecting an account,
// token-paginated.
func (s *journalService) ListItemsByAccount(ctx context.Context, accountID string, params dto.ListJournalEntriesParams) (*dto.ListJournalItemsResponse, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	items, nextToken, err := s.journalRepo.ListItemsByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListJournalItemsResponse{
		Items:     make([]dto.JournalItemResponse, len(items)),
		NextToken: nextToken,
	}
	for i, item := range items {
		resp.Items[i] = dto.ToJournalItemResponse(item)
	}
	return resp, nil
}

// UpdateEntryLines replaces the full item set of a DRAFT entry. The repository
// re-checks the draft status under the entry row lock, so a concurrent approval
// cannot race the edit.
func (s *journalService) UpdateEntryLines(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrInvalidState, entry.Reference, entry.Status)
	}

	items, totalDebit, totalCredit, err := s.buildItems(ctx, entryID, req.Items)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		entry.EntryDate = *req.Date
	}
	if req.Description != nil {
		if *req.Description == "" {
			return nil, ErrDescriptionMissing
		}
		entry.Description = *req.Description
	}
	entry.TotalDebit = totalDebit
	entry.TotalCredit = totalCredit
	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = userID

	if err := s.journalRepo.ReplaceEntryItems(ctx, *entry, items); err != nil {
		logger.Error("Failed to replace entry items", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}
	entry.Items = items

	s.auditSvc.Record(ctx, "journal_entry", entryID, domain.AuditUpdated, userID,
		fmt.Sprintf("entry %s lines replaced", entry.Reference))

	return entry, nil
}

// ApproveEntry transitions DRAFT -> POSTED. Balance is re-validated from the stored
// items inside the posting transaction, so lines edited after creation are checked
// again before any account balance moves.
func (s *journalService) ApproveEntry(ctx context.Context, entryID string, approverUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.journalRepo.PostEntry(ctx, entryID, approverUserID, time.Now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrLockTimeout) {
			metrics.LockTimeouts.WithLabelValues("post_entry").Inc()
		}
		logger.Error("Failed to post journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return err
	}

	metrics.EntriesPosted.Inc()
	s.auditSvc.Record(ctx, "journal_entry", entryID, domain.AuditApproved, approverUserID, "entry posted")

	logger.Info("Journal entry posted", slog.String("entry_id", entryID))
	return nil
}

// RejectEntry transitions DRAFT -> REJECTED with no ledger effect.
func (s *journalService) RejectEntry(ctx context.Context, entryID string, userID string) error {
	if err := s.journalRepo.SetEntryStatus(ctx, entryID, domain.EntryDraft, domain.EntryRejected, userID, time.Now().UTC()); err != nil {
		return err
	}
	s.auditSvc.Record(ctx, "journal_entry", entryID, domain.AuditRejected, userID, "entry rejected")
	return nil
}

// CancelEntry transitions DRAFT -> CANCELLED with no ledger effect.
func (s *journalService) CancelEntry(ctx context.Context, entryID string, userID string) error {
	if err := s.journalRepo.SetEntryStatus(ctx, entryID, domain.EntryDraft, domain.EntryCancelled, userID, time.Now().UTC()); err != nil {
		return err
	}
	s.auditSvc.Record(ctx, "journal_entry", entryID, domain.AuditCancelled, userID, "entry cancelled")
	return nil
}

// DeleteEntry removes a DRAFT entry and its items.
func (s *journalService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		logger.Error("Failed to delete journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return err
	}

	s.auditSvc.Record(ctx, "journal_entry", entryID, domain.AuditDeleted, userID, "draft entry deleted")
	return nil
}
