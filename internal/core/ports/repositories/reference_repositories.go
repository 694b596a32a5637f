package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// ReferenceRepository issues unique, human-readable sequence references
// (<PREFIX>-<zero-padded-number>) safely under concurrent callers.
type ReferenceRepository interface {
	// NextReference allocates the next reference for the prefix inside the caller's
	// database transaction: the sequence row is locked with SELECT ... FOR UPDATE, so
	// concurrent allocators serialize and committed sequences are gap-free. If the
	// lock cannot be acquired within the configured lock_timeout the call fails with
	// ErrLockTimeout and the caller's whole unit of work must be retried.
	NextReference(ctx context.Context, tx pgx.Tx, prefix string) (string, error)

	// SyncSequence repairs a sequence row from the owning table: last_value becomes
	// the greater of its current value and the maximum numeric suffix found among
	// existing references. Used at startup and for audit.
	SyncSequence(ctx context.Context, prefix string) error
}
