package postgres

import (
	"context"
	"errors"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = `id, category_id, year, month, monthly_limit, created_at, updated_at`

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	b := &domain.Budget{}
	err := row.Scan(&b.ID, &b.CategoryID, &b.Year, &b.Month, &b.MonthlyLimit, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Create creates a new budget
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO budgets (category_id, year, month, monthly_limit)
		VALUES ($1, $2, $3, $4)
		RETURNING `+budgetColumns,
		budget.CategoryID, budget.Year, budget.Month, budget.MonthlyLimit)

	created, err := scanBudget(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrBudgetAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a budget by its ID
func (r *BudgetRepository) GetByID(id int32) (*domain.Budget, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+budgetColumns+`
		FROM budgets
		WHERE id = $1`,
		id)

	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// GetByMonth retrieves all budgets for a month, oldest first
func (r *BudgetRepository) GetByMonth(year, month int) ([]*domain.Budget, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+budgetColumns+`
		FROM budgets
		WHERE year = $1 AND month = $2
		ORDER BY created_at, id`,
		year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// GetByCategoryAndMonth retrieves the budget of a category for a month
func (r *BudgetRepository) GetByCategoryAndMonth(categoryID int32, year, month int) (*domain.Budget, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+budgetColumns+`
		FROM budgets
		WHERE category_id = $1 AND year = $2 AND month = $3`,
		categoryID, year, month)

	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// UpdateLimit updates a budget's monthly limit
func (r *BudgetRepository) UpdateLimit(id int32, limit decimal.Decimal) (*domain.Budget, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE budgets
		SET monthly_limit = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+budgetColumns,
		id, limit)

	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// Delete removes a budget
func (r *BudgetRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}
