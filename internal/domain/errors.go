package domain

import "errors"

// Domain errors
var (
	ErrNotFound              = errors.New("resource not found")
	ErrAlreadyExists         = errors.New("resource already exists")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInternalError         = errors.New("internal error")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrMissingCategory       = errors.New("missing category")
	ErrInvalidLimit          = errors.New("invalid budget limit")
	ErrInvalidDateRange      = errors.New("invalid date range")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrExpenseNotFound       = errors.New("expense not found")
	ErrBudgetNotFound        = errors.New("budget not found")
	ErrBudgetAlreadyExists   = errors.New("budget already exists for category and month")
	ErrRecurringNotFound     = errors.New("recurring expense not found")
	ErrRecurringInactive     = errors.New("recurring expense is inactive")
	ErrNameRequired          = errors.New("name is required")
	ErrNameTooLong           = errors.New("name exceeds maximum length")
	ErrInvalidFrequency      = errors.New("invalid frequency")
)

// Validation constants
const (
	MaxCategoryNameLength = 255
	MaxDescriptionLength  = 1000
)
