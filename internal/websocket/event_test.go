package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":     1,
		"amount": "100.00",
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeExpense, payload)
	after := time.Now()

	assert.Equal(t, "expense.created", evt.Type)
	assert.Equal(t, EntityTypeExpense, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEvent_JSON_Serialization(t *testing.T) {
	fixedTime := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	payload := map[string]interface{}{
		"id":     float64(1),
		"amount": "100.00",
	}

	evt := Event{
		Type:      "expense.created",
		Entity:    EntityTypeExpense,
		Payload:   payload,
		Timestamp: fixedTime,
	}

	data, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded Event
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, evt.Type, decoded.Type)
	assert.Equal(t, evt.Entity, decoded.Entity)
	assert.Equal(t, fixedTime.UTC(), decoded.Timestamp.UTC())

	// Payload should be preserved
	decodedPayload, ok := decoded.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), decodedPayload["id"])
	assert.Equal(t, "100.00", decodedPayload["amount"])
}

func TestEvent_ToJSON(t *testing.T) {
	payload := map[string]interface{}{
		"id": float64(42),
	}

	evt := NewEvent(EventTypeUpdated, EntityTypeBudget, payload)

	data, err := evt.ToJSON()
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	var decoded map[string]interface{}
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, "budget.updated", decoded["type"])
	assert.Equal(t, "budget", decoded["entity"])
	assert.NotNil(t, decoded["payload"])
	assert.NotNil(t, decoded["timestamp"])
}

func TestExpenseEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{
		"id":     float64(1),
		"amount": "50.00",
	}

	t.Run("ExpenseCreated", func(t *testing.T) {
		evt := ExpenseCreated(payload)
		assert.Equal(t, "expense.created", evt.Type)
		assert.Equal(t, EntityTypeExpense, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})

	t.Run("ExpenseDeleted", func(t *testing.T) {
		evt := ExpenseDeleted(payload)
		assert.Equal(t, "expense.deleted", evt.Type)
		assert.Equal(t, EntityTypeExpense, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})
}

func TestBudgetEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{
		"category_name": "Food",
		"status":        "critical",
	}

	t.Run("BudgetAlert", func(t *testing.T) {
		evt := BudgetAlert(payload)
		assert.Equal(t, "budget.alert", evt.Type)
		assert.Equal(t, EntityTypeBudget, evt.Entity)
	})

	t.Run("BudgetUpdated", func(t *testing.T) {
		evt := BudgetUpdated(payload)
		assert.Equal(t, "budget.updated", evt.Type)
	})

	t.Run("BudgetDeleted", func(t *testing.T) {
		evt := BudgetDeleted(payload)
		assert.Equal(t, "budget.deleted", evt.Type)
	})
}

func TestRecurringEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{
		"id":          float64(3),
		"description": "Rent",
	}

	t.Run("RecurringGenerated", func(t *testing.T) {
		evt := RecurringGenerated(payload)
		assert.Equal(t, "recurring.generated", evt.Type)
		assert.Equal(t, EntityTypeRecurring, evt.Entity)
	})

	t.Run("RecurringUpdated", func(t *testing.T) {
		evt := RecurringUpdated(payload)
		assert.Equal(t, "recurring.updated", evt.Type)
	})
}
