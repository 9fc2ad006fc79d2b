package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string { return &s }

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func sampleEntry() domain.CashEntry {
	return domain.CashEntry{
		EntryID:     "entry_1",
		BusinessID:  "biz_1",
		EntryType:   domain.EntryExpense,
		Amount:      decimal.NewFromInt(500),
		EntryDate:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		CategoryID:  stringPtr("cat_1"),
		Description: stringPtr("Rent"),
		AuditFields: domain.AuditFields{CreatedBy: "user_acc"},
	}
}

func TestCashEntry_Validate(t *testing.T) {
	e := sampleEntry()
	require.NoError(t, e.Validate())

	zero := sampleEntry()
	zero.Amount = decimal.Zero
	assert.ErrorIs(t, zero.Validate(), apperrors.ErrValidation)

	badType := sampleEntry()
	badType.EntryType = "TRANSFER"
	assert.ErrorIs(t, badType.Validate(), apperrors.ErrValidation)

	noDate := sampleEntry()
	noDate.EntryDate = time.Time{}
	assert.ErrorIs(t, noDate.Validate(), apperrors.ErrValidation)
}

func TestCashEntry_Diff(t *testing.T) {
	e := sampleEntry()

	t.Run("keeps only differing fields", func(t *testing.T) {
		proposed := domain.CashEntryChanges{
			Amount:      decimalPtr(decimal.RequireFromString("500.00")),
			Description: stringPtr("Shop rent"),
			CategoryID:  stringPtr("cat_1"),
		}
		diff := e.Diff(proposed)
		assert.Nil(t, diff.Amount, "equal decimals with different scale are not a change")
		assert.Nil(t, diff.CategoryID)
		require.NotNil(t, diff.Description)
		assert.Equal(t, "Shop rent", *diff.Description)
	})

	t.Run("identical proposal is empty", func(t *testing.T) {
		proposed := domain.CashEntryChanges{
			Amount:    decimalPtr(decimal.NewFromInt(500)),
			EntryDate: &e.EntryDate,
		}
		assert.True(t, e.Diff(proposed).IsEmpty())
	})

	t.Run("setting a missing reference is a change", func(t *testing.T) {
		proposed := domain.CashEntryChanges{PartyID: stringPtr("party_1")}
		diff := e.Diff(proposed)
		require.NotNil(t, diff.PartyID)
	})
}

func TestCashEntry_Apply(t *testing.T) {
	e := sampleEntry()
	income := domain.EntryIncome
	e.Apply(domain.CashEntryChanges{
		EntryType:  &income,
		Amount:     decimalPtr(decimal.RequireFromString("750.25")),
		CategoryID: stringPtr(""),
	})

	assert.Equal(t, domain.EntryIncome, e.EntryType)
	assert.True(t, e.Amount.Equal(decimal.RequireFromString("750.25")))
	assert.Nil(t, e.CategoryID)
	assert.Equal(t, "Rent", *e.Description)
}

func TestCashEntry_Snapshot(t *testing.T) {
	e := sampleEntry()
	s := e.Snapshot()
	assert.Equal(t, e.EntryID, s.EntryID)
	assert.True(t, s.Amount.Equal(e.Amount))
	assert.Equal(t, e.EntryDate, s.EntryDate)
	assert.Equal(t, "user_acc", s.CreatedBy)
}

func TestCashEntry_ChangedSince(t *testing.T) {
	original := sampleEntry().Snapshot()
	amountOnly := domain.CashEntryChanges{Amount: decimalPtr(decimal.NewFromInt(450))}

	t.Run("untouched entry", func(t *testing.T) {
		assert.False(t, sampleEntry().ChangedSince(original, amountOnly))
	})

	t.Run("diffed field drifted", func(t *testing.T) {
		e := sampleEntry()
		e.Amount = decimal.NewFromInt(520)
		assert.True(t, e.ChangedSince(original, amountOnly))
	})

	t.Run("same amount with different scale", func(t *testing.T) {
		e := sampleEntry()
		e.Amount = decimal.RequireFromString("500.00")
		assert.False(t, e.ChangedSince(original, amountOnly))
	})

	t.Run("other field drifted", func(t *testing.T) {
		e := sampleEntry()
		e.Description = stringPtr("Shop rent")
		assert.False(t, e.ChangedSince(original, amountOnly))
		assert.True(t, e.ChangedSince(original, domain.CashEntryChanges{Description: stringPtr("Rent for May")}))
	})

	t.Run("due date set after filing", func(t *testing.T) {
		due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		e := sampleEntry()
		e.DueDate = &due
		assert.True(t, e.ChangedSince(original, domain.CashEntryChanges{DueDate: &due}))
	})

	t.Run("cleared reference matches absent one", func(t *testing.T) {
		e := sampleEntry()
		e.CategoryID = nil
		snap := e.Snapshot()
		e.CategoryID = stringPtr("")
		assert.False(t, e.ChangedSince(snap, domain.CashEntryChanges{CategoryID: stringPtr("cat_2")}))
	})
}
