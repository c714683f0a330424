package domain

import "time"

// UncategorizedName is the sentinel bucket for expenses without a category.
// Grouping never rejects such expenses; dropping them would corrupt totals.
const UncategorizedName = "Uncategorized"

type Category struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id int32) (*Category, error)
	GetByName(name string) (*Category, error)
	GetAll() ([]*Category, error)
}
