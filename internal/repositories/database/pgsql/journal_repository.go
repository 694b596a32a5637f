package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rukibhamz/erpsolution-sub001/internal/apperrors"
	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	portsrepo "github.com/rukibhamz/erpsolution-sub001/internal/core/ports/repositories"
	"github.com/rukibhamz/erpsolution-sub001/internal/models"
	"github.com/rukibhamz/erpsolution-sub001/internal/platform/metrics"
	"github.com/rukibhamz/erpsolution-sub001/internal/utils/accounting"
	"github.com/rukibhamz/erpsolution-sub001/internal/utils/mapping"
	"github.com/rukibhamz/erpsolution-sub001/internal/utils/pagination"
)

const entryColumns = `entry_id, reference, entry_date, description, total_debit, total_credit,
	status, approved_by, approved_at,
	created_at, created_by, last_updated_at, last_updated_by`

const itemColumns = `item_id, entry_id, account_id, debit, credit, description`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo   portsrepo.AccountRepositoryFacade
	referenceRepo portsrepo.ReferenceRepository
}

// newPgxJournalRepository creates a new repository for journal entry and item data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade, referenceRepo portsrepo.ReferenceRepository) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		referenceRepo:  referenceRepo,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.Reference,
		&m.EntryDate,
		&m.Description,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.Status,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

func scanItem(row pgx.Row) (*domain.JournalItem, error) {
	var m models.JournalItem
	err := row.Scan(
		&m.ItemID,
		&m.EntryID,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.Description,
	)
	if err != nil {
		return nil, err
	}
	item := mapping.ToDomainJournalItem(m)
	return &item, nil
}

func insertItemsBatch(items []domain.JournalItem) *pgx.Batch {
	query := `
		INSERT INTO journal_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelJournalItem(item)
		batch.Queue(query, m.ItemID, m.EntryID, m.AccountID, m.Debit, m.Credit, m.Description)
	}
	return batch
}

// CreateEntry persists the entry and its items in DRAFT state. The reference is
// allocated inside the same transaction, so a failed insert never burns a committed
// sequence number and no partial reference is ever visible.
func (r *PgxJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalItem) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	reference, err := r.referenceRepo.NextReference(ctx, tx, domain.JournalReferencePrefix)
	if err != nil {
		return "", err
	}
	entry.Reference = reference

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.Reference,
		m.EntryDate,
		m.Description,
		m.TotalDebit,
		m.TotalCredit,
		m.Status,
		m.ApprovedBy,
		m.ApprovedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, mapPgError(err))
	}

	br := tx.SendBatch(ctx, insertItemsBatch(items))
	if err := br.Close(); err != nil {
		return "", apperrors.NewAppError(500, "failed to insert items for journal entry "+m.EntryID, mapPgError(err))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	// Counted after commit so rolled-back allocations are not reported.
	metrics.ReferencesAllocated.WithLabelValues(domain.JournalReferencePrefix).Inc()
	return reference, nil
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}
	return entry, nil
}

// FindItemsByEntryID retrieves all items of an entry in deterministic order.
func (r *PgxJournalRepository) FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalItem, error) {
	query := `SELECT ` + itemColumns + ` FROM journal_items WHERE entry_id = $1 ORDER BY item_id;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for journal entry %s: %w", entryID, err)
	}
	defer rows.Close()

	items := []domain.JournalItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal item row: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal item rows: %w", err)
	}
	return items, nil
}

// ListEntries retrieves a token-paginated list of entries, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	args := []interface{}{}
	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` WHERE (entry_date, created_at) < ($1, $2)`
		args = append(args, entryDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row during list: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows during list: %w", err)
	}

	var newToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newToken = &token
	}
	return entries, newToken, nil
}

// ListItemsByAccountID retrieves the line items of posted entries affecting an account,
// newest entries first, token-paginated.
func (r *PgxJournalRepository) ListItemsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalItem, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ji.item_id, ji.entry_id, ji.account_id, ji.debit, ji.credit, ji.description
		FROM journal_items ji
		JOIN journal_entries je ON je.entry_id = ji.entry_id
		WHERE ji.account_id = $1 AND je.status = 'POSTED'
	`
	args := []interface{}{accountID}
	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken, 1)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND ji.item_id > $2`
		args = append(args, fields[0])
	}
	query += fmt.Sprintf(` ORDER BY ji.item_id LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal items for account %s: %w", accountID, err)
	}
	defer rows.Close()

	items := []domain.JournalItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal item row during list: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal item rows during list: %w", err)
	}

	var newToken *string
	if len(items) > limit {
		items = items[:limit]
		token := pagination.EncodeMultiFieldToken(items[len(items)-1].ItemID)
		newToken = &token
	}
	return items, newToken, nil
}

// lockEntryStatus locks the entry row and returns its current status.
func lockEntryStatus(ctx context.Context, tx pgx.Tx, entryID string) (domain.EntryStatus, error) {
	var status models.EntryStatus
	err := tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to lock journal entry %s: %w", entryID, mapPgError(err))
	}
	return domain.EntryStatus(status), nil
}

// ReplaceEntryItems swaps the full item set of a DRAFT entry and refreshes the cached
// totals and header fields. The status check runs under the entry row lock so an edit
// can never race an approval.
func (r *PgxJournalRepository) ReplaceEntryItems(ctx context.Context, entry domain.JournalEntry, items []domain.JournalItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockEntryStatus(ctx, tx, entry.EntryID)
	if err != nil {
		return err
	}
	if status != domain.EntryDraft {
		return fmt.Errorf("%w: journal entry %s is %s", apperrors.ErrInvalidState, entry.EntryID, status)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_items WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear items for journal entry "+entry.EntryID, mapPgError(err))
	}

	br := tx.SendBatch(ctx, insertItemsBatch(items))
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert replacement items for journal entry "+entry.EntryID, mapPgError(err))
	}

	m := mapping.ToModelJournalEntry(entry)
	_, err = tx.Exec(ctx, `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, total_debit = $4, total_credit = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $1;
	`, m.EntryID, m.EntryDate, m.Description, m.TotalDebit, m.TotalCredit, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update header for journal entry "+entry.EntryID, mapPgError(err))
	}

	return r.Commit(ctx, tx)
}

// PostEntry transitions a DRAFT entry to POSTED. The stored items are re-validated
// under the entry row lock, closing the window between a stale read and an edit, and
// the per-account balance deltas are applied under the account row locks. Everything
// happens in one transaction; a failure at any step rolls back the whole approval.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, entryID string, approverID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockEntryStatus(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if status != domain.EntryDraft {
		return fmt.Errorf("%w: journal entry %s is %s", apperrors.ErrInvalidState, entryID, status)
	}

	itemRows, err := tx.Query(ctx, `SELECT `+itemColumns+` FROM journal_items WHERE entry_id = $1 ORDER BY item_id;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to load items for journal entry %s: %w", entryID, mapPgError(err))
	}
	items := []domain.JournalItem{}
	for itemRows.Next() {
		item, err := scanItem(itemRows)
		if err != nil {
			itemRows.Close()
			return fmt.Errorf("failed to scan journal item row during post: %w", err)
		}
		items = append(items, *item)
	}
	if err := itemRows.Err(); err != nil {
		itemRows.Close()
		return fmt.Errorf("error iterating journal item rows during post: %w", err)
	}
	itemRows.Close()

	if err := accounting.ValidateEntryItems(items); err != nil {
		return fmt.Errorf("%w: journal entry %s failed balance re-check: %s", apperrors.ErrValidation, entryID, err.Error())
	}

	balanceChanges := accounting.BalanceChanges(items)
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, approverID, now); err != nil {
		return err
	}

	// Compare-and-swap on status: the WHERE clause re-checks DRAFT even though the
	// row is locked, so a logic error elsewhere can never double-post.
	cmdTag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = $2, approved_by = $3, approved_at = $4, last_updated_at = $4, last_updated_by = $3
		WHERE entry_id = $1 AND status = $5;
	`, entryID, models.EntryPosted, approverID, now, models.EntryDraft)
	if err != nil {
		return apperrors.NewAppError(500, "failed to post journal entry "+entryID, mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s was not draft at post time", apperrors.ErrInvalidState, entryID)
	}

	return r.Commit(ctx, tx)
}

// SetEntryStatus performs a compare-and-swap status transition with no ledger effect.
func (r *PgxJournalRepository) SetEntryStatus(ctx context.Context, entryID string, expected domain.EntryStatus, next domain.EntryStatus, userID string, now time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE journal_entries
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND status = $2;
	`, entryID, models.EntryStatus(expected), models.EntryStatus(next), now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for journal entry "+entryID, mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindEntryByID(ctx, entryID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: journal entry %s is not %s", apperrors.ErrInvalidState, entryID, expected)
	}
	return nil
}

// DeleteEntry removes a DRAFT entry, cascading its items. The status check runs under
// the entry row lock.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockEntryStatus(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if status != domain.EntryDraft {
		return fmt.Errorf("%w: journal entry %s is %s", apperrors.ErrInvalidState, entryID, status)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_items WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete items for journal entry "+entryID, mapPgError(err))
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, mapPgError(err))
	}

	return r.Commit(ctx, tx)
}
