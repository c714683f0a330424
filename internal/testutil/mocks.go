// Package testutil provides in-memory repository mocks for service and
// handler tests.
package testutil

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/centavo/centavo-backend/internal/domain"
)

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int32]*domain.Category
	ByName     map[string]*domain.Category
	NextID     int32
	CreateFn   func(category *domain.Category) (*domain.Category, error)
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
		ByName:     make(map[string]*domain.Category),
		NextID:     1,
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	if m.CreateFn != nil {
		return m.CreateFn(category)
	}
	if _, ok := m.ByName[category.Name]; ok {
		return nil, domain.ErrCategoryAlreadyExists
	}
	category.ID = m.NextID
	m.NextID++
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	m.Categories[category.ID] = category
	m.ByName[category.Name] = category
	return category, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id int32) (*domain.Category, error) {
	if c, ok := m.Categories[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetByName retrieves a category by name
func (m *MockCategoryRepository) GetByName(name string) (*domain.Category, error) {
	if c, ok := m.ByName[name]; ok {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll retrieves all categories ordered by name
func (m *MockCategoryRepository) GetAll() ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(m.Categories))
	for _, c := range m.Categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	if category.ID == 0 {
		category.ID = m.NextID
		m.NextID++
	} else if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
	m.Categories[category.ID] = category
	m.ByName[category.Name] = category
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses map[int32]*domain.Expense
	NextID   int32
	CreateFn func(expense *domain.Expense) (*domain.Expense, error)
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[int32]*domain.Expense),
		NextID:   1,
	}
}

// Create creates a new expense
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	if m.CreateFn != nil {
		return m.CreateFn(expense)
	}
	expense.ID = m.NextID
	m.NextID++
	expense.CreatedAt = time.Now()
	expense.UpdatedAt = expense.CreatedAt
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// GetByID retrieves an expense by ID
func (m *MockExpenseRepository) GetByID(id int32) (*domain.Expense, error) {
	if e, ok := m.Expenses[id]; ok {
		return e, nil
	}
	return nil, domain.ErrExpenseNotFound
}

// GetAll retrieves all expenses ordered by ID
func (m *MockExpenseRepository) GetAll() ([]*domain.Expense, error) {
	out := make([]*domain.Expense, 0, len(m.Expenses))
	for _, e := range m.Expenses {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByDateRange retrieves expenses whose UTC calendar day falls in [from, to]
func (m *MockExpenseRepository) GetByDateRange(from, to time.Time) ([]*domain.Expense, error) {
	all, _ := m.GetAll()
	out := make([]*domain.Expense, 0)
	fromDay := dayUTC(from)
	toDay := dayUTC(to)
	for _, e := range all {
		day := dayUTC(e.OccurredAt)
		if !day.Before(fromDay) && !day.After(toDay) {
			out = append(out, e)
		}
	}
	return out, nil
}

// GetByYear retrieves expenses occurring in the given UTC year
func (m *MockExpenseRepository) GetByYear(year int) ([]*domain.Expense, error) {
	all, _ := m.GetAll()
	out := make([]*domain.Expense, 0)
	for _, e := range all {
		if e.OccurredAt.UTC().Year() == year {
			out = append(out, e)
		}
	}
	return out, nil
}

// SumByCategoryAndMonth sums expense amounts for a category in a given month
func (m *MockExpenseRepository) SumByCategoryAndMonth(categoryID int32, year, month int) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range m.Expenses {
		if e.CategoryID == nil || *e.CategoryID != categoryID {
			continue
		}
		occurred := e.OccurredAt.UTC()
		if occurred.Year() == year && int(occurred.Month()) == month {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

// Delete removes an expense
func (m *MockExpenseRepository) Delete(id int32) error {
	if _, ok := m.Expenses[id]; !ok {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// AddExpense adds an expense to the mock repository (helper for tests)
func (m *MockExpenseRepository) AddExpense(expense *domain.Expense) {
	if expense.ID == 0 {
		expense.ID = m.NextID
		m.NextID++
	} else if expense.ID >= m.NextID {
		m.NextID = expense.ID + 1
	}
	m.Expenses[expense.ID] = expense
}

// MockIncomeRepository is a mock implementation of domain.IncomeRepository
type MockIncomeRepository struct {
	Incomes map[int32]*domain.Income
	NextID  int32
}

// NewMockIncomeRepository creates a new MockIncomeRepository
func NewMockIncomeRepository() *MockIncomeRepository {
	return &MockIncomeRepository{
		Incomes: make(map[int32]*domain.Income),
		NextID:  1,
	}
}

// Create creates a new income
func (m *MockIncomeRepository) Create(income *domain.Income) (*domain.Income, error) {
	income.ID = m.NextID
	m.NextID++
	income.CreatedAt = time.Now()
	income.UpdatedAt = income.CreatedAt
	m.Incomes[income.ID] = income
	return income, nil
}

// GetAll retrieves all incomes ordered by ID
func (m *MockIncomeRepository) GetAll() ([]*domain.Income, error) {
	out := make([]*domain.Income, 0, len(m.Incomes))
	for _, i := range m.Incomes {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByDateRange retrieves incomes whose UTC calendar day falls in [from, to]
func (m *MockIncomeRepository) GetByDateRange(from, to time.Time) ([]*domain.Income, error) {
	all, _ := m.GetAll()
	out := make([]*domain.Income, 0)
	fromDay := dayUTC(from)
	toDay := dayUTC(to)
	for _, i := range all {
		day := dayUTC(i.OccurredAt)
		if !day.Before(fromDay) && !day.After(toDay) {
			out = append(out, i)
		}
	}
	return out, nil
}

// AddIncome adds an income to the mock repository (helper for tests)
func (m *MockIncomeRepository) AddIncome(income *domain.Income) {
	if income.ID == 0 {
		income.ID = m.NextID
		m.NextID++
	} else if income.ID >= m.NextID {
		m.NextID = income.ID + 1
	}
	m.Incomes[income.ID] = income
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets map[int32]*domain.Budget
	NextID  int32
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[int32]*domain.Budget),
		NextID:  1,
	}
}

// Create creates a new budget
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	for _, b := range m.Budgets {
		if b.CategoryID == budget.CategoryID && b.Year == budget.Year && b.Month == budget.Month {
			return nil, domain.ErrBudgetAlreadyExists
		}
	}
	budget.ID = m.NextID
	m.NextID++
	budget.CreatedAt = time.Now()
	budget.UpdatedAt = budget.CreatedAt
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// GetByID retrieves a budget by ID
func (m *MockBudgetRepository) GetByID(id int32) (*domain.Budget, error) {
	if b, ok := m.Budgets[id]; ok {
		return b, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// GetByMonth retrieves all budgets for a month ordered by ID
func (m *MockBudgetRepository) GetByMonth(year, month int) ([]*domain.Budget, error) {
	out := make([]*domain.Budget, 0)
	for _, b := range m.Budgets {
		if b.Year == year && b.Month == month {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByCategoryAndMonth retrieves the budget for a category in a month
func (m *MockBudgetRepository) GetByCategoryAndMonth(categoryID int32, year, month int) (*domain.Budget, error) {
	for _, b := range m.Budgets {
		if b.CategoryID == categoryID && b.Year == year && b.Month == month {
			return b, nil
		}
	}
	return nil, domain.ErrBudgetNotFound
}

// UpdateLimit updates a budget's monthly limit
func (m *MockBudgetRepository) UpdateLimit(id int32, limit decimal.Decimal) (*domain.Budget, error) {
	b, ok := m.Budgets[id]
	if !ok {
		return nil, domain.ErrBudgetNotFound
	}
	b.MonthlyLimit = limit
	b.UpdatedAt = time.Now()
	return b, nil
}

// Delete removes a budget
func (m *MockBudgetRepository) Delete(id int32) error {
	if _, ok := m.Budgets[id]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// AddBudget adds a budget to the mock repository (helper for tests)
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) {
	if budget.ID == 0 {
		budget.ID = m.NextID
		m.NextID++
	} else if budget.ID >= m.NextID {
		m.NextID = budget.ID + 1
	}
	m.Budgets[budget.ID] = budget
}

// MockRecurringExpenseRepository is a mock implementation of
// domain.RecurringExpenseRepository
type MockRecurringExpenseRepository struct {
	Recurring map[int32]*domain.RecurringExpense
	NextID    int32
	UpdateFn  func(re *domain.RecurringExpense) (*domain.RecurringExpense, error)
}

// NewMockRecurringExpenseRepository creates a new MockRecurringExpenseRepository
func NewMockRecurringExpenseRepository() *MockRecurringExpenseRepository {
	return &MockRecurringExpenseRepository{
		Recurring: make(map[int32]*domain.RecurringExpense),
		NextID:    1,
	}
}

// Create creates a new recurring expense
func (m *MockRecurringExpenseRepository) Create(re *domain.RecurringExpense) (*domain.RecurringExpense, error) {
	re.ID = m.NextID
	m.NextID++
	re.CreatedAt = time.Now()
	re.UpdatedAt = re.CreatedAt
	m.Recurring[re.ID] = re
	return re, nil
}

// GetByID retrieves a recurring expense by ID
func (m *MockRecurringExpenseRepository) GetByID(id int32) (*domain.RecurringExpense, error) {
	if re, ok := m.Recurring[id]; ok {
		return re, nil
	}
	return nil, domain.ErrRecurringNotFound
}

// GetAll retrieves all recurring expenses ordered by ID
func (m *MockRecurringExpenseRepository) GetAll() ([]*domain.RecurringExpense, error) {
	out := make([]*domain.RecurringExpense, 0, len(m.Recurring))
	for _, re := range m.Recurring {
		out = append(out, re)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update replaces a recurring expense
func (m *MockRecurringExpenseRepository) Update(re *domain.RecurringExpense) (*domain.RecurringExpense, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(re)
	}
	if _, ok := m.Recurring[re.ID]; !ok {
		return nil, domain.ErrRecurringNotFound
	}
	re.UpdatedAt = time.Now()
	m.Recurring[re.ID] = re
	return re, nil
}

// Delete removes a recurring expense
func (m *MockRecurringExpenseRepository) Delete(id int32) error {
	if _, ok := m.Recurring[id]; !ok {
		return domain.ErrRecurringNotFound
	}
	delete(m.Recurring, id)
	return nil
}

// AddRecurring adds a recurring expense to the mock repository (helper for tests)
func (m *MockRecurringExpenseRepository) AddRecurring(re *domain.RecurringExpense) {
	if re.ID == 0 {
		re.ID = m.NextID
		m.NextID++
	} else if re.ID >= m.NextID {
		m.NextID = re.ID + 1
	}
	m.Recurring[re.ID] = re
}

func dayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
