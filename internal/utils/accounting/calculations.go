package accounting

import (
	"fmt"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Direction is the side a ledger line falls on. Credit adds to the balance, Debit subtracts.
type Direction int

const (
	Credit Direction = iota + 1
	Debit
)

// SignedEntry is the accumulator's view of any ledger line.
type SignedEntry struct {
	Direction Direction
	Amount    decimal.Decimal
}

// Signed returns the entry's contribution to a balance.
func (e SignedEntry) Signed() decimal.Decimal {
	if e.Direction == Debit {
		return e.Amount.Neg()
	}
	return e.Amount
}

// FromCashEntry maps Income to Credit and Expense to Debit.
func FromCashEntry(e domain.CashEntry) (SignedEntry, error) {
	switch e.EntryType {
	case domain.EntryIncome:
		return SignedEntry{Direction: Credit, Amount: e.Amount}, nil
	case domain.EntryExpense:
		return SignedEntry{Direction: Debit, Amount: e.Amount}, nil
	}
	return SignedEntry{}, fmt.Errorf("unknown entry type '%s' for entry %s", e.EntryType, e.EntryID)
}

// FromBankTransaction maps Deposit to Credit and Withdrawal to Debit.
func FromBankTransaction(t domain.BankTransaction) (SignedEntry, error) {
	switch t.TransactionType {
	case domain.BankDeposit:
		return SignedEntry{Direction: Credit, Amount: t.Amount}, nil
	case domain.BankWithdrawal:
		return SignedEntry{Direction: Debit, Amount: t.Amount}, nil
	}
	return SignedEntry{}, fmt.Errorf("unknown bank transaction type '%s' for transaction %s", t.TransactionType, t.TransactionID)
}

// CashEntries converts a slice of cash entries, keeping their order.
func CashEntries(entries []domain.CashEntry) ([]SignedEntry, error) {
	out := make([]SignedEntry, 0, len(entries))
	for _, e := range entries {
		s, err := FromCashEntry(e)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// BankTransactions converts a slice of bank transactions, keeping their order.
func BankTransactions(txns []domain.BankTransaction) ([]SignedEntry, error) {
	out := make([]SignedEntry, 0, len(txns))
	for _, t := range txns {
		s, err := FromBankTransaction(t)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
