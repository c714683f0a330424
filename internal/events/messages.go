package events

import (
	"encoding/json"
	"time"
)

// ExpenseCreatedMessage is a lightweight notification that an expense was
// recorded. Consumers fetch the full row from the database when they need
// more than the summary fields.
type ExpenseCreatedMessage struct {
	ExpenseID    int32     `json:"expense_id"`
	CategoryName string    `json:"category_name"`
	Amount       string    `json:"amount"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewExpenseCreatedMessage creates an expense created message stamped with
// the current time.
func NewExpenseCreatedMessage(expenseID int32, categoryName, amount string) *ExpenseCreatedMessage {
	return &ExpenseCreatedMessage{
		ExpenseID:    expenseID,
		CategoryName: categoryName,
		Amount:       amount,
		Timestamp:    time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseCreatedMessageFromJSON creates a message from JSON bytes.
func ExpenseCreatedMessageFromJSON(data []byte) (*ExpenseCreatedMessage, error) {
	var msg ExpenseCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// BudgetAlertMessage is emitted when a category crosses a budget threshold.
type BudgetAlertMessage struct {
	CategoryName       string    `json:"category_name"`
	SpendingPercentage string    `json:"spending_percentage"`
	Status             string    `json:"status"`
	Year               int32     `json:"year"`
	Month              int32     `json:"month"`
	Timestamp          time.Time `json:"timestamp"`
}

// NewBudgetAlertMessage creates a budget alert message stamped with the
// current time.
func NewBudgetAlertMessage(categoryName, spendingPercentage, status string, year, month int32) *BudgetAlertMessage {
	return &BudgetAlertMessage{
		CategoryName:       categoryName,
		SpendingPercentage: spendingPercentage,
		Status:             status,
		Year:               year,
		Month:              month,
		Timestamp:          time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BudgetAlertMessageFromJSON creates a message from JSON bytes.
func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
