package models

type Category struct {
	CategoryID   string `db:"category_id"`
	BusinessID   string `db:"business_id"`
	Name         string `db:"name"`
	CategoryType string `db:"category_type"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
