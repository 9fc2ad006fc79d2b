package repositories

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
)

type CategoryReader interface {
	FindCategoryByID(ctx context.Context, businessID, categoryID string) (*domain.Category, error)
	// ListCategories returns active categories, optionally restricted to one type.
	ListCategories(ctx context.Context, businessID string, categoryType *domain.CategoryType) ([]domain.Category, error)
}

type CategoryWriter interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
