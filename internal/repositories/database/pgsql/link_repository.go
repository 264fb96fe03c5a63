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

type PgxLinkRepository struct {
	pool *pgxpool.Pool
}

// newPgxLinkRepository creates a new repository for obligation link data.
func newPgxLinkRepository(pool *pgxpool.Pool) portsrepo.ObligationLinkRepositoryFacade {
	return &PgxLinkRepository{pool: pool}
}

var _ portsrepo.ObligationLinkRepositoryFacade = (*PgxLinkRepository)(nil)

func toDomainLink(m models.ObligationLink) domain.ObligationLink {
	return domain.ObligationLink{
		TransactionID: m.TransactionID,
		OccurrenceID:  m.OccurrenceID,
		ObligationID:  m.ObligationID,
		DueDate:       m.DueDate,
		Score:         m.Score,
		AutoApplied:   m.AutoApplied,
		MatchedAt:     m.MatchedAt,
		MatchedBy:     m.MatchedBy,
	}
}

const linkColumns = `transaction_id, occurrence_id, obligation_id, due_date, score, auto_applied, matched_at, matched_by`

func scanLink(row pgx.Row) (models.ObligationLink, error) {
	var m models.ObligationLink
	err := row.Scan(
		&m.TransactionID,
		&m.OccurrenceID,
		&m.ObligationID,
		&m.DueDate,
		&m.Score,
		&m.AutoApplied,
		&m.MatchedAt,
		&m.MatchedBy,
	)
	return m, err
}

// ApplyLink inserts a link. Re-applying the identical pair is a no-op;
// a conflicting pair on either unique side reports ErrDuplicate.
func (r *PgxLinkRepository) ApplyLink(ctx context.Context, link domain.ObligationLink) error {
	query := `
		INSERT INTO obligation_links (` + linkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		link.TransactionID,
		link.OccurrenceID,
		link.ObligationID,
		link.DueDate,
		link.Score,
		link.AutoApplied,
		link.MatchedAt,
		link.MatchedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation on either side
				existing, findErr := r.FindLinkByOccurrenceID(ctx, link.OccurrenceID)
				if findErr == nil && existing.TransactionID == link.TransactionID {
					// Same pair applied twice, nothing to do.
					return nil
				}
				return fmt.Errorf("%w: transaction %s or occurrence %s is already linked", apperrors.ErrDuplicate, link.TransactionID, link.OccurrenceID)
			}
			if pgErr.Code == "23503" { // Foreign key violation
				return fmt.Errorf("%w: transaction %s does not exist", apperrors.ErrValidation, link.TransactionID)
			}
		}
		return fmt.Errorf("failed to apply link for occurrence %s: %w", link.OccurrenceID, err)
	}
	return nil
}

// FindLinkByOccurrenceID retrieves the link covering an occurrence.
func (r *PgxLinkRepository) FindLinkByOccurrenceID(ctx context.Context, occurrenceID string) (*domain.ObligationLink, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM obligation_links
		WHERE occurrence_id = $1;
	`
	m, err := scanLink(r.pool.QueryRow(ctx, query, occurrenceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find link by occurrence ID %s: %w", occurrenceID, err)
	}

	d := toDomainLink(m)
	return &d, nil
}

// FindLinkByTransactionID retrieves the link a transaction participates in.
func (r *PgxLinkRepository) FindLinkByTransactionID(ctx context.Context, transactionID string) (*domain.ObligationLink, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM obligation_links
		WHERE transaction_id = $1;
	`
	m, err := scanLink(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find link by transaction ID %s: %w", transactionID, err)
	}

	d := toDomainLink(m)
	return &d, nil
}

// ListLinksInRange retrieves all links whose occurrence due date falls within
// [from, to], ordered by due date.
func (r *PgxLinkRepository) ListLinksInRange(ctx context.Context, from time.Time, to time.Time) ([]domain.ObligationLink, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM obligation_links
		WHERE due_date >= $1 AND due_date <= $2
		ORDER BY due_date, occurrence_id;
	`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list links in range: %w", err)
	}
	defer rows.Close()

	links := make([]domain.ObligationLink, 0)
	for rows.Next() {
		m, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link row: %w", err)
		}
		links = append(links, toDomainLink(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating link rows: %w", err)
	}
	return links, nil
}

// RemoveLink deletes the link covering an occurrence.
func (r *PgxLinkRepository) RemoveLink(ctx context.Context, occurrenceID string) error {
	query := `
		DELETE FROM obligation_links
		WHERE occurrence_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, occurrenceID)
	if err != nil {
		return fmt.Errorf("failed to remove link for occurrence %s: %w", occurrenceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
