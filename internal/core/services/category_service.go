package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/google/uuid"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, authorizer portssvc.BusinessAuthorizerSvc) portssvc.CategorySvcFacade {
	return &categoryService{
		BaseService:  BaseService{BusinessAuthorizer: authorizer},
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) ListCategories(ctx context.Context, businessID string, categoryType string, userID string) ([]domain.Category, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer); err != nil {
		return nil, err
	}
	var filter *domain.CategoryType
	if categoryType != "" {
		t, err := domain.ParseCategoryType(categoryType)
		if err != nil {
			return nil, err
		}
		filter = &t
	}
	categories, err := s.categoryRepo.ListCategories(ctx, businessID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, businessID string, req dto.CreateCategoryRequest, userID string) (*domain.Category, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	t, err := domain.ParseCategoryType(req.CategoryType)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("category name is required")
	}

	category := domain.Category{
		CategoryID:   uuid.NewString(),
		BusinessID:   businessID,
		Name:         name,
		CategoryType: t,
		IsActive:     true,
		AuditFields:  newAuditFields(userID, s.now()),
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("a category with this name already exists")
		}
		s.LogError(ctx, err, "Failed to save category", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

func (s *categoryService) findCategory(ctx context.Context, businessID, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, businessID, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("category not found")
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, businessID, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	category, err := s.findCategory(ctx, businessID, categoryID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("category name is required")
		}
		category.Name = name
	}
	if req.CategoryType != nil {
		t, err := domain.ParseCategoryType(*req.CategoryType)
		if err != nil {
			return nil, err
		}
		category.CategoryType = t
	}
	touch(&category.AuditFields, userID, s.now())

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("a category with this name already exists")
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory deactivates the category. Existing entries keep their reference.
func (s *categoryService) DeleteCategory(ctx context.Context, businessID, categoryID, userID string) error {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleOwner); err != nil {
		return err
	}
	category, err := s.findCategory(ctx, businessID, categoryID)
	if err != nil {
		return err
	}
	if !category.IsActive {
		return nil
	}
	category.IsActive = false
	touch(&category.AuditFields, userID, s.now())
	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.LogInfo(ctx, "Category deactivated", slog.String("category_id", categoryID))
	return nil
}
