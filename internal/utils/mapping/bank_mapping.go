package mapping

import (
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/models"
)

func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:     d.BankAccountID,
		BusinessID:        d.BusinessID,
		BankName:          d.BankName,
		AccountNumber:     d.AccountNumber,
		AccountHolderName: d.AccountHolderName,
		IFSCCode:          d.IFSCCode,
		OpeningBalance:    d.OpeningBalance,
		CurrentBalance:    d.CurrentBalance,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:     m.BankAccountID,
		BusinessID:        m.BusinessID,
		BankName:          m.BankName,
		AccountNumber:     m.AccountNumber,
		AccountHolderName: m.AccountHolderName,
		IFSCCode:          m.IFSCCode,
		OpeningBalance:    m.OpeningBalance,
		CurrentBalance:    m.CurrentBalance,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainBankAccountSlice(ms []models.BankAccount) []domain.BankAccount {
	return toDomainSlice(ms, ToDomainBankAccount)
}

func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		TransactionID:   d.TransactionID,
		BankAccountID:   d.BankAccountID,
		BusinessID:      d.BusinessID,
		TransactionType: string(d.TransactionType),
		Amount:          d.Amount,
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		ReferenceNumber: d.ReferenceNumber,
		BalanceAfter:    d.BalanceAfter,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID:   m.TransactionID,
		BankAccountID:   m.BankAccountID,
		BusinessID:      m.BusinessID,
		TransactionType: domain.BankTransactionType(m.TransactionType),
		Amount:          m.Amount,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		ReferenceNumber: m.ReferenceNumber,
		BalanceAfter:    m.BalanceAfter,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainBankTransactionSlice(ms []models.BankTransaction) []domain.BankTransaction {
	return toDomainSlice(ms, ToDomainBankTransaction)
}
