package application

import (
	"github.com/financialos/FinancialOS/internal/ledger/domain"
)

type CategoryService struct {
	categories domain.CategoryRepository
}

func NewCategoryService(categories domain.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Categories() []domain.Category {
	return s.categories.Categories()
}

func (s *CategoryService) CategoriesByType(categoryType string) []domain.Category {
	return s.categories.CategoriesByType(categoryType)
}

func (s *CategoryService) CreateCategory(c *domain.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.categories.AddCategory(*c)
}

func (s *CategoryService) UpdateCategory(c domain.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.categories.UpdateCategory(c)
}

func (s *CategoryService) DeleteCategory(id string) error {
	return s.categories.DeleteCategory(id)
}
