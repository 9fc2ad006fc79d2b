package dto

// CreateCategoryRequest accepts INCOME, EXPENSE or BOTH. CashIn and CashOut are
// accepted from older clients and mapped to INCOME and EXPENSE.
type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	CategoryType string `json:"categoryType" binding:"required"`
}

type UpdateCategoryRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=100"`
	CategoryType *string `json:"categoryType"`
}

type ListCategoriesParams struct {
	CategoryType string `form:"type"`
}
