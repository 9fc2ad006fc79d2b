package mapping

import (
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/models"
)

func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:   d.CategoryID,
		BusinessID:   d.BusinessID,
		Name:         d.Name,
		CategoryType: string(d.CategoryType),
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:   m.CategoryID,
		BusinessID:   m.BusinessID,
		Name:         m.Name,
		CategoryType: domain.CategoryType(m.CategoryType),
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	return toDomainSlice(ms, ToDomainCategory)
}
