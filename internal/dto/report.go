package dto

import (
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

type ReportSummaryParams struct {
	DateRangeParams
}

// ReportSummary totals the cashbook over a date range.
type ReportSummary struct {
	StartDate      *Date                  `json:"startDate,omitempty"`
	EndDate        *Date                  `json:"endDate,omitempty"`
	TotalIncome    decimal.Decimal        `json:"totalIncome"`
	TotalExpense   decimal.Decimal        `json:"totalExpense"`
	NetBalance     decimal.Decimal        `json:"netBalance"`
	CategoryTotals []domain.CategoryTotal `json:"categoryTotals"`
	BankBalance    decimal.Decimal        `json:"bankBalance"`
	// DisplayNetBalance is NetBalance as shown in the UI (fraction truncated).
	DisplayNetBalance string `json:"displayNetBalance"`
}
