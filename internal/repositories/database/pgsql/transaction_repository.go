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
	"github.com/rukibhamz/erpsolution-sub001/internal/utils/mapping"
	"github.com/rukibhamz/erpsolution-sub001/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, reference, account_id, transaction_type, amount,
	transaction_date, category, sub_category, payment_method, description,
	status, approved_by, approved_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo   portsrepo.AccountRepositoryFacade
	referenceRepo portsrepo.ReferenceRepository
}

// newPgxTransactionRepository creates a new repository for standalone transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade, referenceRepo portsrepo.ReferenceRepository) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		referenceRepo:  referenceRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Reference,
		&m.AccountID,
		&m.TransactionType,
		&m.Amount,
		&m.TransactionDate,
		&m.Category,
		&m.SubCategory,
		&m.PaymentMethod,
		&m.Description,
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
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// CreateTransaction persists the transaction in PENDING state, allocating its
// reference inside the same database transaction.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	reference, err := r.referenceRepo.NextReference(ctx, tx, domain.TransactionReferencePrefix)
	if err != nil {
		return "", err
	}
	txn.Reference = reference

	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.Reference,
		m.AccountID,
		m.TransactionType,
		m.Amount,
		m.TransactionDate,
		m.Category,
		m.SubCategory,
		m.PaymentMethod,
		m.Description,
		m.Status,
		m.ApprovedBy,
		m.ApprovedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, mapPgError(err))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	// Counted after commit so rolled-back allocations are not reported.
	metrics.ReferencesAllocated.WithLabelValues(domain.TransactionReferencePrefix).Inc()
	return reference, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

func (r *PgxTransactionRepository) listTransactions(ctx context.Context, whereClause string, baseArgs []interface{}, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions` + whereClause
	args := baseArgs
	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		connective := " WHERE"
		if whereClause != "" {
			connective = " AND"
		}
		query += fmt.Sprintf("%s (transaction_date, created_at) < ($%d, $%d)", connective, len(args)+1, len(args)+2)
		args = append(args, txnDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY transaction_date DESC, created_at DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row during list: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows during list: %w", err)
	}

	var newToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		newToken = &token
	}
	return txns, newToken, nil
}

// ListTransactions retrieves a token-paginated list of transactions, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return r.listTransactions(ctx, "", nil, limit, nextToken)
}

// ListTransactionsByAccountID retrieves a token-paginated list of transactions
// against a specific account.
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return r.listTransactions(ctx, " WHERE account_id = $1", []interface{}{accountID}, limit, nextToken)
}

// ApproveTransaction transitions a PENDING transaction to APPROVED under the
// transaction and account row locks, applying the signed amount to the account
// balance exactly once. The status check under the lock makes approval idempotent in
// the failure direction: a concurrent second approval observes APPROVED and fails.
func (r *PgxTransactionRepository) ApproveTransaction(ctx context.Context, transactionID string, approverID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status models.TransactionStatus
	var accountID string
	var amount decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT status, account_id, amount FROM transactions
		WHERE transaction_id = $1
		FOR UPDATE;
	`, transactionID).Scan(&status, &accountID, &amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock transaction %s: %w", transactionID, mapPgError(err))
	}

	switch domain.TransactionStatus(status) {
	case domain.TxnPending:
		// proceed
	case domain.TxnApproved:
		return fmt.Errorf("%w: transaction %s", apperrors.ErrAlreadyApproved, transactionID)
	default:
		return fmt.Errorf("%w: transaction %s is %s", apperrors.ErrInvalidState, transactionID, status)
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{accountID}); err != nil {
		return err
	}
	changes := map[string]decimal.Decimal{accountID: amount}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, changes, approverID, now); err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `
		UPDATE transactions
		SET status = $2, approved_by = $3, approved_at = $4, last_updated_at = $4, last_updated_by = $3
		WHERE transaction_id = $1 AND status = $5;
	`, transactionID, models.TxnApproved, approverID, now, models.TxnPending)
	if err != nil {
		return apperrors.NewAppError(500, "failed to approve transaction "+transactionID, mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s was not pending at approval time", apperrors.ErrInvalidState, transactionID)
	}

	return r.Commit(ctx, tx)
}

// SetTransactionStatus performs a compare-and-swap status transition with no ledger effect.
func (r *PgxTransactionRepository) SetTransactionStatus(ctx context.Context, transactionID string, expected domain.TransactionStatus, next domain.TransactionStatus, userID string, now time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE transactions
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND status = $2;
	`, transactionID, models.TransactionStatus(expected), models.TransactionStatus(next), now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for transaction "+transactionID, mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindTransactionByID(ctx, transactionID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: transaction %s is not %s", apperrors.ErrInvalidState, transactionID, expected)
	}
	return nil
}

// UpdateTransaction updates the mutable fields of a PENDING transaction. The status
// guard lives in the WHERE clause, so an approved transaction is never silently edited.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET amount = $2, transaction_date = $3, category = $4, sub_category = $5,
		    payment_method = $6, description = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1 AND status = $10;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.Amount,
		m.TransactionDate,
		m.Category,
		m.SubCategory,
		m.PaymentMethod,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		models.TxnPending,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindTransactionByID(ctx, m.TransactionID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: transaction %s is not pending", apperrors.ErrInvalidState, m.TransactionID)
	}
	return nil
}

// DeleteTransaction removes a PENDING transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		DELETE FROM transactions WHERE transaction_id = $1 AND status = $2;
	`, transactionID, models.TxnPending)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindTransactionByID(ctx, transactionID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: transaction %s is not pending", apperrors.ErrInvalidState, transactionID)
	}
	return nil
}
