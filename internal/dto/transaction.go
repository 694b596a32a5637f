package dto

import (
	"time"

	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the payload for creating a standalone transaction.
// Amount is supplied positive for INCOME/EXPENSE (the service applies the sign) and
// signed for TRANSFER/ADJUSTMENT.
type CreateTransactionRequest struct {
	AccountID       string          `json:"accountID" binding:"required"`
	TransactionType string          `json:"transactionType" binding:"required,oneof=INCOME EXPENSE TRANSFER ADJUSTMENT"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Date            time.Time       `json:"date" binding:"required"`
	Category        string          `json:"category" binding:"max=100"`
	SubCategory     string          `json:"subCategory" binding:"max=100"`
	PaymentMethod   string          `json:"paymentMethod" binding:"max=50"`
	Description     string          `json:"description"`
}

// UpdateTransactionRequest defines the payload for editing a pending transaction.
type UpdateTransactionRequest struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Date          *time.Time       `json:"date,omitempty"`
	Category      *string          `json:"category,omitempty"`
	SubCategory   *string          `json:"subCategory,omitempty"`
	PaymentMethod *string          `json:"paymentMethod,omitempty"`
	Description   *string          `json:"description,omitempty"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	Reference       string          `json:"reference"`
	AccountID       string          `json:"accountID"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	Category        string          `json:"category"`
	SubCategory     string          `json:"subCategory"`
	PaymentMethod   string          `json:"paymentMethod"`
	Description     string          `json:"description"`
	Status          string          `json:"status"`
	ApprovedBy      *string         `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time      `json:"approvedAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ListTransactionsParams holds query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a token-paginated page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		Reference:       t.Reference,
		AccountID:       t.AccountID,
		TransactionType: string(t.TransactionType),
		Amount:          t.Amount,
		Date:            t.TransactionDate,
		Category:        t.Category,
		SubCategory:     t.SubCategory,
		PaymentMethod:   t.PaymentMethod,
		Description:     t.Description,
		Status:          string(t.Status),
		ApprovedBy:      t.ApprovedBy,
		ApprovedAt:      t.ApprovedAt,
		CreatedAt:       t.CreatedAt,
		CreatedBy:       t.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
