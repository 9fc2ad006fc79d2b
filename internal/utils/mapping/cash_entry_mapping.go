package mapping

import (
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/models"
)

func ToModelCashEntry(d domain.CashEntry) models.CashEntry {
	return models.CashEntry{
		EntryID:            d.EntryID,
		BusinessID:         d.BusinessID,
		EntryType:          string(d.EntryType),
		Amount:             d.Amount,
		EntryDate:          d.EntryDate,
		CategoryID:         d.CategoryID,
		CategoryName:       d.CategoryName,
		Description:        d.Description,
		PartyID:            d.PartyID,
		PartyName:          d.PartyName,
		DueDate:            d.DueDate,
		IsModified:         d.IsModified,
		ModificationReason: d.ModificationReason,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCashEntry(m models.CashEntry) domain.CashEntry {
	return domain.CashEntry{
		EntryID:            m.EntryID,
		BusinessID:         m.BusinessID,
		EntryType:          domain.EntryType(m.EntryType),
		Amount:             m.Amount,
		EntryDate:          m.EntryDate,
		CategoryID:         m.CategoryID,
		CategoryName:       m.CategoryName,
		Description:        m.Description,
		PartyID:            m.PartyID,
		PartyName:          m.PartyName,
		DueDate:            m.DueDate,
		IsModified:         m.IsModified,
		ModificationReason: m.ModificationReason,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCashEntrySlice(ms []models.CashEntry) []domain.CashEntry {
	return toDomainSlice(ms, ToDomainCashEntry)
}

// ToDomainCategoryTotal names uncategorised rows "Uncategorized".
func ToDomainCategoryTotal(m models.CategoryTotal) domain.CategoryTotal {
	name := "Uncategorized"
	if m.CategoryName != nil {
		name = *m.CategoryName
	}
	return domain.CategoryTotal{
		CategoryID:   m.CategoryID,
		CategoryName: name,
		EntryType:    domain.EntryType(m.EntryType),
		Total:        m.Total,
		Count:        m.Count,
	}
}

func ToDomainCategoryTotalSlice(ms []models.CategoryTotal) []domain.CategoryTotal {
	return toDomainSlice(ms, ToDomainCategoryTotal)
}
