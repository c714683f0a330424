package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spending record. CategoryID is nil for uncategorized
// expenses; CategoryName is denormalized by the repository join and empty
// when no category is attached.
type Expense struct {
	ID           int32           `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	CategoryID   *int32          `json:"categoryId,omitempty"`
	CategoryName string          `json:"categoryName,omitempty"`
	OccurredAt   time.Time       `json:"occurredAt"`
	ReceiptURL   *string         `json:"receiptUrl,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	GetByID(id int32) (*Expense, error)
	GetAll() ([]*Expense, error)
	GetByDateRange(from, to time.Time) ([]*Expense, error)
	GetByYear(year int) ([]*Expense, error)
	SumByCategoryAndMonth(categoryID int32, year, month int) (decimal.Decimal, error)
	Delete(id int32) error
}
