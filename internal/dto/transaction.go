package dto

import (
	"time"

	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a bank transaction.
type CreateTransactionRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	MerchantText    string          `json:"merchantText"`
	DescriptionText string          `json:"descriptionText" binding:"required"`
	Date            time.Time       `json:"date" binding:"required"`
	AccountID       string          `json:"accountID" binding:"required"`
	IsPending       bool            `json:"isPending"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
type UpdateTransactionRequest struct {
	MerchantText    *string `json:"merchantText"`
	DescriptionText *string `json:"descriptionText"`
	IsPending       *bool   `json:"isPending"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID      string          `json:"transactionID"`
	Amount             decimal.Decimal `json:"amount"`
	MerchantText       string          `json:"merchantText"`
	DescriptionText    string          `json:"descriptionText"`
	Date               time.Time       `json:"date"`
	AccountID          string          `json:"accountID"`
	IsPending          bool            `json:"isPending"`
	LinkedObligationID string          `json:"linkedObligationID,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:      txn.TransactionID,
		Amount:             txn.Amount,
		MerchantText:       txn.MerchantText,
		DescriptionText:    txn.DescriptionText,
		Date:               txn.Date,
		AccountID:          txn.AccountID,
		IsPending:          txn.IsPending,
		LinkedObligationID: txn.LinkedObligationID,
		CreatedAt:          txn.CreatedAt,
		LastUpdatedAt:      txn.LastUpdatedAt,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
// From/To bound the transaction date, not the creation timestamp.
type ListTransactionsParams struct {
	Limit     int        `form:"limit,default=50"`
	Offset    int        `form:"offset,default=0"`
	AccountID string     `form:"accountID"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
