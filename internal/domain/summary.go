package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HealthTier is the traffic-light classification of income left unspent in a
// period: green means most income is still unspent, red means the budget is
// nearly or fully exhausted.
type HealthTier string

const (
	HealthTierGreen  HealthTier = "green"
	HealthTierYellow HealthTier = "yellow"
	HealthTierRed    HealthTier = "red"
)

// CategoryGroup is a derived partition of expenses sharing a category name,
// in first-seen order, with an exact decimal subtotal.
type CategoryGroup struct {
	CategoryName string          `json:"categoryName"`
	Expenses     []*Expense      `json:"expenses"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// PeriodSummary is the derived income/expense picture of an inclusive date
// range. Remaining may be negative.
type PeriodSummary struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Remaining    decimal.Decimal `json:"remaining"`
	HealthTier   HealthTier      `json:"healthTier"`
}

// MonthlyReportRow is one row of the dense yearly report: every month of the
// year appears exactly once, zero-filled when no activity exists.
type MonthlyReportRow struct {
	Month            int             `json:"month"`
	Total            decimal.Decimal `json:"total"`
	TransactionCount int             `json:"transactionCount"`
}
