package services

import (
	"context"

	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	"github.com/rukibhamz/erpsolution-sub001/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade defines the account ledger operations exposed to handlers and
// to the other core services.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount soft-deletes an account. Refused for system accounts and
	// accounts with any associated postings.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error

	// RecomputeBalance re-derives the cached balance from posting history.
	RecomputeBalance(ctx context.Context, accountID string, userID string) (decimal.Decimal, error)
}
