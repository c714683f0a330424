package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/util"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `
	e.id, e.amount, e.description, e.category_id, COALESCE(c.name, ''),
	e.occurred_at, e.receipt_url, e.created_at, e.updated_at`

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	e := &domain.Expense{}
	err := row.Scan(&e.ID, &e.Amount, &e.Description, &e.CategoryID, &e.CategoryName,
		&e.OccurredAt, &e.ReceiptURL, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create creates a new expense
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO expenses (amount, description, category_id, occurred_at, receipt_url)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)
		SELECT `+expenseColumns+`
		FROM inserted e
		LEFT JOIN categories c ON c.id = e.category_id`,
		expense.Amount, expense.Description, expense.CategoryID, expense.OccurredAt, expense.ReceiptURL)

	created, err := scanExpense(row)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves an expense by its ID
func (r *ExpenseRepository) GetByID(id int32) (*domain.Expense, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.id = $1`,
		id)

	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// GetAll retrieves all expenses, oldest first for deterministic grouping order
func (r *ExpenseRepository) GetAll() ([]*domain.Expense, error) {
	return r.query(`
		SELECT `+expenseColumns+`
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		ORDER BY e.occurred_at, e.id`)
}

// GetByDateRange retrieves expenses within an inclusive date range
func (r *ExpenseRepository) GetByDateRange(from, to time.Time) ([]*domain.Expense, error) {
	return r.query(`
		SELECT `+expenseColumns+`
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE (e.occurred_at AT TIME ZONE 'UTC')::date BETWEEN $1::date AND $2::date
		ORDER BY e.occurred_at, e.id`,
		from, to)
}

// GetByYear retrieves expenses within a UTC calendar year
func (r *ExpenseRepository) GetByYear(year int) ([]*domain.Expense, error) {
	from, _ := util.MonthBounds(year, 1)
	_, to := util.MonthBounds(year, 12)
	return r.GetByDateRange(from, to)
}

// SumByCategoryAndMonth returns the expense total of a category in a month
func (r *ExpenseRepository) SumByCategoryAndMonth(categoryID int32, year, month int) (decimal.Decimal, error) {
	from, to := util.MonthBounds(year, month)

	ctx := context.Background()
	var sum decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE category_id = $1
		  AND (occurred_at AT TIME ZONE 'UTC')::date BETWEEN $2::date AND $3::date`,
		categoryID, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) query(sql string, args ...any) ([]*domain.Expense, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}
