package domain_test

import (
	"testing"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategoryType(t *testing.T) {
	tests := []struct {
		in   string
		want domain.CategoryType
	}{
		{"INCOME", domain.CategoryIncome},
		{"income", domain.CategoryIncome},
		{"CashIn", domain.CategoryIncome},
		{"CASH_IN", domain.CategoryIncome},
		{"Expense", domain.CategoryExpense},
		{"CashOut", domain.CategoryExpense},
		{"CASH_OUT", domain.CategoryExpense},
		{" Both ", domain.CategoryBoth},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseCategoryType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := domain.ParseCategoryType("transfer")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCategory_Allows(t *testing.T) {
	income := domain.Category{CategoryType: domain.CategoryIncome}
	expense := domain.Category{CategoryType: domain.CategoryExpense}
	both := domain.Category{CategoryType: domain.CategoryBoth}

	assert.True(t, income.Allows(domain.EntryIncome))
	assert.False(t, income.Allows(domain.EntryExpense))
	assert.True(t, expense.Allows(domain.EntryExpense))
	assert.False(t, expense.Allows(domain.EntryIncome))
	assert.True(t, both.Allows(domain.EntryIncome))
	assert.True(t, both.Allows(domain.EntryExpense))
}
