package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/testutil"
)

func setupCategoryServiceTest() (*CategoryService, *testutil.MockCategoryRepository) {
	categoryRepo := testutil.NewMockCategoryRepository()
	service := NewCategoryService(categoryRepo, nil)
	return service, categoryRepo
}

func TestCreateCategory_Success(t *testing.T) {
	service, _ := setupCategoryServiceTest()

	category, err := service.CreateCategory("Food")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if category.Name != "Food" {
		t.Errorf("Expected name 'Food', got %s", category.Name)
	}
	if category.ID == 0 {
		t.Error("Expected non-zero ID")
	}
}

func TestCreateCategory_TrimsWhitespace(t *testing.T) {
	service, _ := setupCategoryServiceTest()

	category, err := service.CreateCategory("  Transport  ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if category.Name != "Transport" {
		t.Errorf("Expected trimmed name 'Transport', got %q", category.Name)
	}
}

func TestCreateCategory_EmptyName(t *testing.T) {
	service, _ := setupCategoryServiceTest()

	_, err := service.CreateCategory("   ")
	if !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
}

func TestCreateCategory_NameTooLong(t *testing.T) {
	service, _ := setupCategoryServiceTest()

	_, err := service.CreateCategory(strings.Repeat("a", domain.MaxCategoryNameLength+1))
	if !errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("Expected ErrNameTooLong, got %v", err)
	}
}

func TestCreateCategory_Duplicate(t *testing.T) {
	service, _ := setupCategoryServiceTest()

	if _, err := service.CreateCategory("Food"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err := service.CreateCategory("Food")
	if !errors.Is(err, domain.ErrCategoryAlreadyExists) {
		t.Errorf("Expected ErrCategoryAlreadyExists, got %v", err)
	}
}

func TestListCategories(t *testing.T) {
	service, categoryRepo := setupCategoryServiceTest()

	categoryRepo.AddCategory(&domain.Category{Name: "Food"})
	categoryRepo.AddCategory(&domain.Category{Name: "Transport"})

	categories, err := service.ListCategories()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("Expected 2 categories, got %d", len(categories))
	}
}

func TestGetCategory_NotFound(t *testing.T) {
	service, _ := setupCategoryServiceTest()

	_, err := service.GetCategory(99)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}
