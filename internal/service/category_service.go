package service

import (
	"strings"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/websocket"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
	publisher    websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, publisher websocket.EventPublisher) *CategoryService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &CategoryService{
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrNameTooLong
	}

	category, err := s.categoryRepo.Create(&domain.Category{Name: name})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(websocket.CategoryCreated(category))
	return category, nil
}

// ListCategories retrieves all categories
func (s *CategoryService) ListCategories() ([]*domain.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(id int32) (*domain.Category, error) {
	return s.categoryRepo.GetByID(id)
}
