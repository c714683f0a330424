package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Income struct {
	ID          int32           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	OccurredAt  time.Time       `json:"occurredAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type IncomeRepository interface {
	Create(income *Income) (*Income, error)
	GetAll() ([]*Income, error)
	GetByDateRange(from, to time.Time) ([]*Income, error)
}
