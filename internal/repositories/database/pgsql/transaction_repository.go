package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pennywiseapp/penny_wise_app/internal/apperrors"
	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	portsrepo "github.com/pennywiseapp/penny_wise_app/internal/core/ports/repositories"
	"github.com/pennywiseapp/penny_wise_app/internal/models"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:      d.TransactionID,
		Amount:             d.Amount,
		MerchantText:       d.MerchantText,
		DescriptionText:    d.DescriptionText,
		Date:               d.Date,
		AccountID:          d.AccountID,
		IsPending:          d.IsPending,
		LinkedObligationID: d.LinkedObligationID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:      m.TransactionID,
		Amount:             m.Amount,
		MerchantText:       m.MerchantText,
		DescriptionText:    m.DescriptionText,
		Date:               m.Date,
		AccountID:          m.AccountID,
		IsPending:          m.IsPending,
		LinkedObligationID: m.LinkedObligationID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// transactionColumns joins against obligation_links so every read carries
// the linked obligation without a second round trip.
const transactionColumns = `t.transaction_id, t.amount, t.merchant_text, t.description_text, t.txn_date, t.account_id, t.is_pending,
	       COALESCE(l.obligation_id, ''), t.created_at, t.created_by, t.last_updated_at, t.last_updated_by`

const transactionFrom = `FROM transactions t
	LEFT JOIN obligation_links l ON l.transaction_id = t.transaction_id`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Amount,
		&m.MerchantText,
		&m.DescriptionText,
		&m.Date,
		&m.AccountID,
		&m.IsPending,
		&m.LinkedObligationID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTransaction inserts a new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)

	query := `
		INSERT INTO transactions (transaction_id, amount, merchant_text, description_text, txn_date, account_id, is_pending, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		m.TransactionID,
		m.Amount,
		m.MerchantText,
		m.DescriptionText,
		m.Date,
		m.AccountID,
		m.IsPending,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
			}
			if pgErr.Code == "23503" { // Foreign key violation
				return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, m.AccountID)
			}
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		` + transactionFrom + `
		WHERE t.transaction_id = $1;
	`
	m, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	d := toDomainTransaction(m)
	return &d, nil
}

// ListTransactions retrieves a filtered, paginated list, newest posting first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionListFilter) ([]domain.Transaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + transactionColumns + `
		` + transactionFrom + `
		WHERE ($1 = '' OR t.account_id = $1)
		  AND ($2::date IS NULL OR t.txn_date >= $2)
		  AND ($3::date IS NULL OR t.txn_date <= $3)
		ORDER BY t.txn_date DESC, t.transaction_id
		LIMIT $4 OFFSET $5;
	`
	rows, err := r.pool.Query(ctx, query, filter.AccountID, filter.From, filter.To, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListTransactionsInRange retrieves all transactions posted within [from, to]
// for reconciliation, oldest first.
func (r *PgxTransactionRepository) ListTransactionsInRange(ctx context.Context, from time.Time, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		` + transactionFrom + `
		WHERE t.txn_date >= $1 AND t.txn_date <= $2
		ORDER BY t.txn_date, t.transaction_id;
	`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions in range: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, toDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

// UpdateTransaction updates the mutable text and pending fields.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)

	query := `
		UPDATE transactions
		SET merchant_text = $2, description_text = $3, is_pending = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE transaction_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.TransactionID,
		m.MerchantText,
		m.DescriptionText,
		m.IsPending,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
