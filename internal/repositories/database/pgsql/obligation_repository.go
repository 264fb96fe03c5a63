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

type PgxObligationRepository struct {
	pool *pgxpool.Pool
}

// newPgxObligationRepository creates a new repository for obligation data.
func newPgxObligationRepository(pool *pgxpool.Pool) portsrepo.ObligationRepositoryFacade {
	return &PgxObligationRepository{pool: pool}
}

var _ portsrepo.ObligationRepositoryFacade = (*PgxObligationRepository)(nil)

// Helper to convert domain.Obligation to models.Obligation for DB storage
func toModelObligation(d domain.Obligation) models.Obligation {
	return models.Obligation{
		ObligationID:    d.ObligationID,
		Name:            d.Name,
		ProviderHint:    d.ProviderHint,
		ExpectedAmount:  d.ExpectedAmount,
		DueDay:          d.DueDay,
		Frequency:       string(d.Frequency),
		ActiveFrom:      d.ActiveFrom,
		ActiveUntil:     d.ActiveUntil,
		IsActive:        d.IsActive,
		LinkedAccountID: d.LinkedAccountID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Obligation from DB to domain.Obligation
func toDomainObligation(m models.Obligation) domain.Obligation {
	return domain.Obligation{
		ObligationID:    m.ObligationID,
		Name:            m.Name,
		ProviderHint:    m.ProviderHint,
		ExpectedAmount:  m.ExpectedAmount,
		DueDay:          m.DueDay,
		Frequency:       domain.Frequency(m.Frequency),
		ActiveFrom:      m.ActiveFrom,
		ActiveUntil:     m.ActiveUntil,
		IsActive:        m.IsActive,
		LinkedAccountID: m.LinkedAccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const obligationColumns = `obligation_id, name, provider_hint, expected_amount, due_day, frequency, active_from, active_until, is_active, linked_account_id, created_at, created_by, last_updated_at, last_updated_by`

func scanObligation(row pgx.Row) (models.Obligation, error) {
	var m models.Obligation
	var linkedAccountID *string
	err := row.Scan(
		&m.ObligationID,
		&m.Name,
		&m.ProviderHint,
		&m.ExpectedAmount,
		&m.DueDay,
		&m.Frequency,
		&m.ActiveFrom,
		&m.ActiveUntil,
		&m.IsActive,
		&linkedAccountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	if linkedAccountID != nil {
		m.LinkedAccountID = *linkedAccountID
	}
	return m, nil
}

// SaveObligation inserts a new obligation.
func (r *PgxObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	m := toModelObligation(obligation)

	query := `
		INSERT INTO obligations (` + obligationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	var linkedAccountID *string
	if m.LinkedAccountID != "" {
		linkedAccountID = &m.LinkedAccountID
	}

	_, err := r.pool.Exec(ctx, query,
		m.ObligationID,
		m.Name,
		m.ProviderHint,
		m.ExpectedAmount,
		m.DueDay,
		m.Frequency,
		m.ActiveFrom,
		m.ActiveUntil,
		m.IsActive,
		linkedAccountID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: obligation with ID %s already exists", apperrors.ErrDuplicate, m.ObligationID)
		}
		return fmt.Errorf("failed to save obligation %s: %w", m.ObligationID, err)
	}
	return nil
}

// FindObligationByID retrieves an obligation by its ID.
func (r *PgxObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM obligations
		WHERE obligation_id = $1;
	`
	m, err := scanObligation(r.pool.QueryRow(ctx, query, obligationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find obligation by ID %s: %w", obligationID, err)
	}

	d := toDomainObligation(m)
	return &d, nil
}

// ListObligations retrieves a paginated list of obligations, newest first.
func (r *PgxObligationRepository) ListObligations(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Obligation, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + obligationColumns + `
		FROM obligations
		WHERE ($1 = false OR is_active = true)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, activeOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list obligations: %w", err)
	}
	defer rows.Close()

	return collectObligations(rows)
}

// ListActiveObligations retrieves every active obligation for schedule
// projection. The set is expected to stay small for a single household.
func (r *PgxObligationRepository) ListActiveObligations(ctx context.Context) ([]domain.Obligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM obligations
		WHERE is_active = true
		ORDER BY obligation_id;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active obligations: %w", err)
	}
	defer rows.Close()

	return collectObligations(rows)
}

func collectObligations(rows pgx.Rows) ([]domain.Obligation, error) {
	obligations := make([]domain.Obligation, 0)
	for rows.Next() {
		m, err := scanObligation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan obligation row: %w", err)
		}
		obligations = append(obligations, toDomainObligation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating obligation rows: %w", err)
	}
	return obligations, nil
}

// UpdateObligation updates an existing obligation.
func (r *PgxObligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation) error {
	m := toModelObligation(obligation)

	query := `
		UPDATE obligations
		SET name = $2, provider_hint = $3, expected_amount = $4, due_day = $5, frequency = $6,
		    active_from = $7, active_until = $8, is_active = $9, linked_account_id = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE obligation_id = $1;
	`
	var linkedAccountID *string
	if m.LinkedAccountID != "" {
		linkedAccountID = &m.LinkedAccountID
	}

	tag, err := r.pool.Exec(ctx, query,
		m.ObligationID,
		m.Name,
		m.ProviderHint,
		m.ExpectedAmount,
		m.DueDay,
		m.Frequency,
		m.ActiveFrom,
		m.ActiveUntil,
		m.IsActive,
		linkedAccountID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update obligation %s: %w", m.ObligationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateObligation marks an obligation inactive without deleting it.
func (r *PgxObligationRepository) DeactivateObligation(ctx context.Context, obligationID string, userID string, now time.Time) error {
	query := `
		UPDATE obligations
		SET is_active = false, last_updated_at = $2, last_updated_by = $3
		WHERE obligation_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, obligationID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate obligation %s: %w", obligationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
