package repositories

import (
	"context"
	"time"

	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
)

// TransactionListFilter narrows a transaction listing.
type TransactionListFilter struct {
	AccountID string
	From      *time.Time // inclusive, on the transaction date
	To        *time.Time // inclusive
	Limit     int
	Offset    int
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter, ordered by date.
	ListTransactions(ctx context.Context, filter TransactionListFilter) ([]domain.Transaction, error)

	// ListTransactionsInRange retrieves every transaction dated inside
	// [from, to], for reconciliation passes.
	ListTransactionsInRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates an existing transaction's details.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
