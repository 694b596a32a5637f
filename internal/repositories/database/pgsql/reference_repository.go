package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rukibhamz/erpsolution-sub001/internal/apperrors"
	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	portsrepo "github.com/rukibhamz/erpsolution-sub001/internal/core/ports/repositories"
)

// sequenceOwners maps each prefix to the table and column holding the issued
// references, for SyncSequence repair. Only registered prefixes may be allocated.
var sequenceOwners = map[string]struct {
	table  string
	column string
}{
	domain.JournalReferencePrefix:     {table: "journal_entries", column: "reference"},
	domain.TransactionReferencePrefix: {table: "transactions", column: "reference"},
}

type PgxReferenceRepository struct {
	BaseRepository
}

// newPgxReferenceRepository creates a new repository for reference sequences.
func newPgxReferenceRepository(pool *pgxpool.Pool) portsrepo.ReferenceRepository {
	return &PgxReferenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReferenceRepository = (*PgxReferenceRepository)(nil)

// NextReference allocates the next reference for the prefix inside the caller's
// transaction. The sequence row is locked with SELECT ... FOR UPDATE, so concurrent
// allocators serialize on it and two callers can never receive the same value. The
// returned reference only becomes visible when the caller's transaction commits;
// on rollback the increment rolls back with it, keeping committed sequences dense.
func (r *PgxReferenceRepository) NextReference(ctx context.Context, tx pgx.Tx, prefix string) (string, error) {
	if _, ok := sequenceOwners[prefix]; !ok {
		return "", fmt.Errorf("%w: unknown reference prefix %q", apperrors.ErrValidation, prefix)
	}

	// Seed the row lazily so a fresh sequence starts at 1.
	_, err := tx.Exec(ctx, `
		INSERT INTO reference_sequences (prefix, last_value)
		VALUES ($1, 0)
		ON CONFLICT (prefix) DO NOTHING;
	`, prefix)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to seed reference sequence "+prefix, mapPgError(err))
	}

	var lastValue int64
	err = tx.QueryRow(ctx, `
		SELECT last_value FROM reference_sequences
		WHERE prefix = $1
		FOR UPDATE;
	`, prefix).Scan(&lastValue)
	if err != nil {
		if mapped := mapPgError(err); errors.Is(mapped, apperrors.ErrLockTimeout) {
			return "", fmt.Errorf("reference sequence %s: %w", prefix, mapped)
		}
		return "", apperrors.NewAppError(500, "failed to lock reference sequence "+prefix, err)
	}

	next := lastValue + 1
	_, err = tx.Exec(ctx, `
		UPDATE reference_sequences SET last_value = $2 WHERE prefix = $1;
	`, prefix, next)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to advance reference sequence "+prefix, mapPgError(err))
	}

	return domain.FormatReference(prefix, next), nil
}

// SyncSequence repairs the sequence row from the owning table: last_value becomes the
// greater of its current value and the maximum numeric suffix among issued references.
// Idempotent; run at startup so a hand-edited or restored table can never cause the
// allocator to re-issue an existing reference.
func (r *PgxReferenceRepository) SyncSequence(ctx context.Context, prefix string) error {
	owner, ok := sequenceOwners[prefix]
	if !ok {
		return fmt.Errorf("%w: unknown reference prefix %q", apperrors.ErrValidation, prefix)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO reference_sequences (prefix, last_value)
		VALUES ($1, 0)
		ON CONFLICT (prefix) DO NOTHING;
	`, prefix)
	if err != nil {
		return apperrors.NewAppError(500, "failed to seed reference sequence "+prefix, mapPgError(err))
	}

	// Table and column come from the static registry above, never from input.
	query := fmt.Sprintf(`
		UPDATE reference_sequences s
		SET last_value = GREATEST(s.last_value, COALESCE((
			SELECT MAX(split_part(%s, '-', 2)::bigint)
			FROM %s
			WHERE %s LIKE $1 || '-%%'
		), 0))
		WHERE s.prefix = $1;
	`, owner.column, owner.table, owner.column)

	if _, err := tx.Exec(ctx, query, prefix); err != nil {
		return apperrors.NewAppError(500, "failed to sync reference sequence "+prefix, mapPgError(err))
	}

	return r.Commit(ctx, tx)
}
