package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack/internal/domain"
)

// TransactionRepository define el contrato de persistencia para movimientos.
type TransactionRepository interface {
	Create(ctx context.Context, tx domain.Transaction) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
	Summarize(ctx context.Context, userID string) (domain.Summary, error)
}

// PgTransactionRepository implementa TransactionRepository usando pgxpool.
type PgTransactionRepository struct {
	pool *pgxpool.Pool
}

func NewPgTransactionRepository(pool *pgxpool.Pool) *PgTransactionRepository {
	return &PgTransactionRepository{pool: pool}
}

func (r *PgTransactionRepository) Create(ctx context.Context, tx domain.Transaction) error {
	const query = `
		INSERT INTO transactions (id, user_id, kind, title, amount, category, note, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		tx.ID,
		tx.UserID,
		tx.Kind,
		tx.Title,
		tx.Amount,
		tx.Category,
		tx.Note,
		tx.OccurredAt,
		tx.CreatedAt,
	)
	return err
}

func (r *PgTransactionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	const query = `
		SELECT id, user_id, kind, title, amount, category, note, occurred_at, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Kind,
			&tx.Title,
			&tx.Amount,
			&tx.Category,
			&tx.Note,
			&tx.OccurredAt,
			&tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (r *PgTransactionRepository) Summarize(ctx context.Context, userID string) (domain.Summary, error) {
	const query = `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE kind = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1
	`
	var s domain.Summary
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&s.TotalIncome, &s.TotalExpense); err != nil {
		return domain.Summary{}, err
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s, nil
}
