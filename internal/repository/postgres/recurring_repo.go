package postgres

import (
	"context"
	"errors"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecurringExpenseRepository implements domain.RecurringExpenseRepository using PostgreSQL
type RecurringExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewRecurringExpenseRepository creates a new RecurringExpenseRepository
func NewRecurringExpenseRepository(pool *pgxpool.Pool) *RecurringExpenseRepository {
	return &RecurringExpenseRepository{pool: pool}
}

const recurringColumns = `
	r.id, r.description, r.amount, r.category_id, COALESCE(c.name, ''),
	r.frequency, r.start_date, r.end_date, r.next_due_date, r.is_active,
	r.created_at, r.updated_at`

func scanRecurring(row pgx.Row) (*domain.RecurringExpense, error) {
	re := &domain.RecurringExpense{}
	err := row.Scan(&re.ID, &re.Description, &re.Amount, &re.CategoryID, &re.CategoryName,
		&re.Frequency, &re.StartDate, &re.EndDate, &re.NextDueDate, &re.IsActive,
		&re.CreatedAt, &re.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return re, nil
}

// Create creates a new recurring expense
func (r *RecurringExpenseRepository) Create(re *domain.RecurringExpense) (*domain.RecurringExpense, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO recurring_expenses
				(description, amount, category_id, frequency, start_date, end_date, next_due_date, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING *
		)
		SELECT `+recurringColumns+`
		FROM inserted r
		LEFT JOIN categories c ON c.id = r.category_id`,
		re.Description, re.Amount, re.CategoryID, re.Frequency,
		re.StartDate, re.EndDate, re.NextDueDate, re.IsActive)

	return scanRecurring(row)
}

// GetByID retrieves a recurring expense by its ID
func (r *RecurringExpenseRepository) GetByID(id int32) (*domain.RecurringExpense, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+recurringColumns+`
		FROM recurring_expenses r
		LEFT JOIN categories c ON c.id = r.category_id
		WHERE r.id = $1`,
		id)

	re, err := scanRecurring(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecurringNotFound
		}
		return nil, err
	}
	return re, nil
}

// GetAll retrieves all recurring expenses, oldest first
func (r *RecurringExpenseRepository) GetAll() ([]*domain.RecurringExpense, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+recurringColumns+`
		FROM recurring_expenses r
		LEFT JOIN categories c ON c.id = r.category_id
		ORDER BY r.created_at, r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.RecurringExpense
	for rows.Next() {
		re, err := scanRecurring(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, re)
	}
	return result, rows.Err()
}

// Update replaces the mutable fields of a recurring expense
func (r *RecurringExpenseRepository) Update(re *domain.RecurringExpense) (*domain.RecurringExpense, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		WITH updated AS (
			UPDATE recurring_expenses
			SET description = $2, amount = $3, category_id = $4, frequency = $5,
			    start_date = $6, end_date = $7, next_due_date = $8, is_active = $9,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT `+recurringColumns+`
		FROM updated r
		LEFT JOIN categories c ON c.id = r.category_id`,
		re.ID, re.Description, re.Amount, re.CategoryID, re.Frequency,
		re.StartDate, re.EndDate, re.NextDueDate, re.IsActive)

	updated, err := scanRecurring(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecurringNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a recurring expense
func (r *RecurringExpenseRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM recurring_expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecurringNotFound
	}
	return nil
}
