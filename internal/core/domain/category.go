package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
)

// CategoryType is the closed set of category kinds.
type CategoryType string

const (
	CategoryIncome  CategoryType = "INCOME"
	CategoryExpense CategoryType = "EXPENSE"
	CategoryBoth    CategoryType = "BOTH"
)

// ParseCategoryType normalises a category type received from a client.
// Older clients send CashIn/CashOut; those are translated here and nowhere else.
func ParseCategoryType(s string) (CategoryType, error) {
	normalised := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	switch normalised {
	case "INCOME", "CASHIN":
		return CategoryIncome, nil
	case "EXPENSE", "CASHOUT":
		return CategoryExpense, nil
	case "BOTH":
		return CategoryBoth, nil
	}
	return "", fmt.Errorf("%w: unknown category type %q", apperrors.ErrValidation, s)
}

// Category groups cash entries for reporting.
type Category struct {
	CategoryID   string       `json:"categoryID"`
	BusinessID   string       `json:"businessID"`
	Name         string       `json:"name"`
	CategoryType CategoryType `json:"categoryType"`
	IsActive     bool         `json:"isActive"`
	AuditFields
}

// Allows reports whether entries of type t may be filed under the category.
func (c Category) Allows(t EntryType) bool {
	switch c.CategoryType {
	case CategoryBoth:
		return true
	case CategoryIncome:
		return t == EntryIncome
	case CategoryExpense:
		return t == EntryExpense
	}
	return false
}
