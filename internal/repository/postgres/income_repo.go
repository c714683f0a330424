package postgres

import (
	"context"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IncomeRepository implements domain.IncomeRepository using PostgreSQL
type IncomeRepository struct {
	pool *pgxpool.Pool
}

// NewIncomeRepository creates a new IncomeRepository
func NewIncomeRepository(pool *pgxpool.Pool) *IncomeRepository {
	return &IncomeRepository{pool: pool}
}

// Create creates a new income
func (r *IncomeRepository) Create(income *domain.Income) (*domain.Income, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO incomes (amount, description, occurred_at)
		VALUES ($1, $2, $3)
		RETURNING id, amount, description, occurred_at, created_at, updated_at`,
		income.Amount, income.Description, income.OccurredAt)

	created := &domain.Income{}
	err := row.Scan(&created.ID, &created.Amount, &created.Description,
		&created.OccurredAt, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetAll retrieves all incomes, oldest first
func (r *IncomeRepository) GetAll() ([]*domain.Income, error) {
	return r.query(`
		SELECT id, amount, description, occurred_at, created_at, updated_at
		FROM incomes
		ORDER BY occurred_at, id`)
}

// GetByDateRange retrieves incomes within an inclusive date range
func (r *IncomeRepository) GetByDateRange(from, to time.Time) ([]*domain.Income, error) {
	return r.query(`
		SELECT id, amount, description, occurred_at, created_at, updated_at
		FROM incomes
		WHERE (occurred_at AT TIME ZONE 'UTC')::date BETWEEN $1::date AND $2::date
		ORDER BY occurred_at, id`,
		from, to)
}

func (r *IncomeRepository) query(sql string, args ...any) ([]*domain.Income, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incomes []*domain.Income
	for rows.Next() {
		income := &domain.Income{}
		err := rows.Scan(&income.ID, &income.Amount, &income.Description,
			&income.OccurredAt, &income.CreatedAt, &income.UpdatedAt)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, income)
	}
	return incomes, rows.Err()
}
