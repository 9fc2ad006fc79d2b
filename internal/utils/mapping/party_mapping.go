package mapping

import (
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/models"
)

func ToModelParty(d domain.Party) models.Party {
	return models.Party{
		PartyID:        d.PartyID,
		BusinessID:     d.BusinessID,
		Name:           d.Name,
		PartyType:      string(d.PartyType),
		Phone:          d.Phone,
		Email:          d.Email,
		Address:        d.Address,
		OpeningBalance: d.OpeningBalance,
		CurrentBalance: d.CurrentBalance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID:        m.PartyID,
		BusinessID:     m.BusinessID,
		Name:           m.Name,
		PartyType:      domain.PartyType(m.PartyType),
		Phone:          m.Phone,
		Email:          m.Email,
		Address:        m.Address,
		OpeningBalance: m.OpeningBalance,
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainPartySlice(ms []models.Party) []domain.Party {
	return toDomainSlice(ms, ToDomainParty)
}
