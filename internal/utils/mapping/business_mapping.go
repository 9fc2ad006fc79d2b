package mapping

import (
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/models"
)

func ToModelBusiness(d domain.Business) models.Business {
	return models.Business{
		BusinessID:   d.BusinessID,
		Name:         d.Name,
		OwnerUserID:  d.OwnerUserID,
		CurrencyCode: d.CurrencyCode,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBusiness(m models.Business) domain.Business {
	return domain.Business{
		BusinessID:   m.BusinessID,
		Name:         m.Name,
		OwnerUserID:  m.OwnerUserID,
		CurrencyCode: m.CurrencyCode,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainBusinessMembership(m models.BusinessMembership) domain.BusinessMembership {
	return domain.BusinessMembership{
		Business:         ToDomainBusiness(m.Business),
		Role:             domain.StaffRole(m.Role),
		CanDeleteEntries: m.CanDeleteEntries,
	}
}

func ToDomainBusinessMembershipSlice(ms []models.BusinessMembership) []domain.BusinessMembership {
	return toDomainSlice(ms, ToDomainBusinessMembership)
}

func ToModelBusinessUser(d domain.BusinessUser) models.BusinessUser {
	return models.BusinessUser{
		BusinessUserID:   d.BusinessUserID,
		BusinessID:       d.BusinessID,
		UserID:           d.UserID,
		UserName:         d.UserName,
		UserEmail:        d.UserEmail,
		Role:             string(d.Role),
		CanDeleteEntries: d.CanDeleteEntries,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBusinessUser(m models.BusinessUser) domain.BusinessUser {
	return domain.BusinessUser{
		BusinessUserID:   m.BusinessUserID,
		BusinessID:       m.BusinessID,
		UserID:           m.UserID,
		UserName:         m.UserName,
		UserEmail:        m.UserEmail,
		Role:             domain.StaffRole(m.Role),
		CanDeleteEntries: m.CanDeleteEntries,
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainBusinessUserSlice(ms []models.BusinessUser) []domain.BusinessUser {
	return toDomainSlice(ms, ToDomainBusinessUser)
}
