package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/centavo/centavo-backend/internal/testutil"
)

type expenseHandlerFixture struct {
	handler      *ExpenseHandler
	expenseRepo  *testutil.MockExpenseRepository
	categoryRepo *testutil.MockCategoryRepository
}

func newExpenseHandler() expenseHandlerFixture {
	expenseRepo := testutil.NewMockExpenseRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo, budgetRepo, nil, nil, nil)
	return expenseHandlerFixture{
		handler:      NewExpenseHandler(expenseService),
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

func TestCreateExpense_Success(t *testing.T) {
	e := echo.New()
	f := newExpenseHandler()
	f.categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Food"})

	reqBody := `{"amount": "$12.345", "description": "Lunch", "category_id": 1, "occurred_at": "2026-03-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := f.handler.CreateExpense(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response ExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Amount != "12.35" {
		t.Errorf("Expected amount '12.35', got %s", response.Amount)
	}

	if response.CategoryName != "Food" {
		t.Errorf("Expected category name 'Food', got %s", response.CategoryName)
	}

	if !strings.HasPrefix(response.OccurredAt, "2026-03-15") {
		t.Errorf("Expected occurred_at on 2026-03-15, got %s", response.OccurredAt)
	}
}

func TestCreateExpense_InvalidAmount(t *testing.T) {
	e := echo.New()
	f := newExpenseHandler()

	reqBody := `{"amount": "not-a-number", "description": "Lunch"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := f.handler.CreateExpense(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problemDetails ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problemDetails); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(problemDetails.Errors) != 1 || problemDetails.Errors[0].Field != "amount" {
		t.Error("Expected validation error for 'amount' field")
	}
}

func TestCreateExpense_UnknownCategory(t *testing.T) {
	e := echo.New()
	f := newExpenseHandler()

	reqBody := `{"amount": "10.00", "description": "Lunch", "category_id": 42}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := f.handler.CreateExpense(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problemDetails ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problemDetails); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(problemDetails.Errors) != 1 || problemDetails.Errors[0].Field != "category_id" {
		t.Error("Expected validation error for 'category_id' field")
	}
}

func TestGetExpenses_DateRange(t *testing.T) {
	e := echo.New()
	f := newExpenseHandler()

	f.expenseRepo.AddExpense(&domain.Expense{
		ID:          1,
		Amount:      decimal.NewFromFloat(10.00),
		Description: "Inside",
		OccurredAt:  time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	})
	f.expenseRepo.AddExpense(&domain.Expense{
		ID:          2,
		Amount:      decimal.NewFromFloat(20.00),
		Description: "Outside",
		OccurredAt:  time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses?from=2026-03-01&to=2026-03-31", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := f.handler.GetExpenses(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response ExpenseListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response.Data) != 1 {
		t.Fatalf("Expected 1 expense, got %d", len(response.Data))
	}

	if response.Data[0].Description != "Inside" {
		t.Errorf("Expected expense 'Inside', got %s", response.Data[0].Description)
	}
}

func TestGetExpenses_InvertedRange(t *testing.T) {
	e := echo.New()
	f := newExpenseHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses?from=2026-03-31&to=2026-03-01", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := f.handler.GetExpenses(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetGroupedExpenses_FirstSeenOrder(t *testing.T) {
	e := echo.New()
	f := newExpenseHandler()

	food := "Food"
	transport := "Transport"
	f.expenseRepo.AddExpense(&domain.Expense{
		ID: 1, Amount: decimal.NewFromFloat(10.50), Description: "Lunch",
		CategoryName: food, OccurredAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	f.expenseRepo.AddExpense(&domain.Expense{
		ID: 2, Amount: decimal.NewFromFloat(2.50), Description: "Bus",
		CategoryName: transport, OccurredAt: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	})
	f.expenseRepo.AddExpense(&domain.Expense{
		ID: 3, Amount: decimal.NewFromFloat(4.50), Description: "Coffee",
		CategoryName: food, OccurredAt: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses/grouped", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := f.handler.GetGroupedExpenses(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response GroupedExpensesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(response.Groups))
	}

	if response.Groups[0].CategoryName != "Food" {
		t.Errorf("Expected first group 'Food', got %s", response.Groups[0].CategoryName)
	}

	if response.Groups[0].Subtotal != "15.00" {
		t.Errorf("Expected Food subtotal '15.00', got %s", response.Groups[0].Subtotal)
	}

	if response.Groups[1].Subtotal != "2.50" {
		t.Errorf("Expected Transport subtotal '2.50', got %s", response.Groups[1].Subtotal)
	}

	if response.Total != "17.50" {
		t.Errorf("Expected total '17.50', got %s", response.Total)
	}
}

func TestDeleteExpense_NotFound(t *testing.T) {
	e := echo.New()
	f := newExpenseHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/expenses/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := f.handler.DeleteExpense(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
