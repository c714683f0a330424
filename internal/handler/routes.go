package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, categoryHandler *CategoryHandler, expenseHandler *ExpenseHandler, incomeHandler *IncomeHandler, summaryHandler *SummaryHandler, budgetHandler *BudgetHandler, recurringHandler *RecurringHandler, reportHandler *ReportHandler, receiptHandler *ReceiptHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Category routes
	categories := api.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/grouped", expenseHandler.GetGroupedExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Income routes
	incomes := api.Group("/incomes")
	incomes.POST("", incomeHandler.CreateIncome)
	incomes.GET("", incomeHandler.GetIncomes)

	// Summary routes
	summary := api.Group("/summary")
	summary.GET("", summaryHandler.GetPeriodSummary)
	summary.GET("/monthly", summaryHandler.GetMonthSummary)

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/dashboard", budgetHandler.GetDashboard)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Recurring expense routes
	recurring := api.Group("/recurring")
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.GET("", recurringHandler.GetRecurring)
	recurring.GET("/dashboard", recurringHandler.GetRecurringDashboard)
	recurring.GET("/:id", recurringHandler.GetRecurringByID)
	recurring.PUT("/:id", recurringHandler.UpdateRecurring)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)
	recurring.POST("/:id/generate", recurringHandler.GenerateRecurring)

	// Report routes
	reports := api.Group("/reports")
	reports.GET("/yearly", reportHandler.GetYearlyReport)
	reports.GET("/yearly/csv", reportHandler.ExportYearlyCSV)

	// Receipt upload route
	api.POST("/receipts", receiptHandler.UploadReceipt)

	// WebSocket endpoint for live entity events
	e.GET("/ws", wsHandler.HandleWS)
}
