package services

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/dto"
)

// CategorySvcFacade manages cashbook categories.
type CategorySvcFacade interface {
	ListCategories(ctx context.Context, businessID string, categoryType string, userID string) ([]domain.Category, error)
	CreateCategory(ctx context.Context, businessID string, req dto.CreateCategoryRequest, userID string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, businessID, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, businessID, categoryID, userID string) error
}
