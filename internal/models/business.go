package models

// Business is a row of the businesses table.
type Business struct {
	BusinessID   string `db:"business_id"`
	Name         string `db:"name"`
	OwnerUserID  string `db:"owner_user_id"`
	CurrencyCode string `db:"currency_code"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}

// BusinessUser is a row of business_users joined with the member's name and email.
type BusinessUser struct {
	BusinessUserID   string `db:"business_user_id"`
	BusinessID       string `db:"business_id"`
	UserID           string `db:"user_id"`
	UserName         string `db:"user_name"`
	UserEmail        string `db:"user_email"`
	Role             string `db:"role"`
	CanDeleteEntries bool   `db:"can_delete_entries"`
	IsActive         bool   `db:"is_active"`
	AuditFields
}

// BusinessMembership is a business row together with the caller's membership columns.
type BusinessMembership struct {
	Business
	Role             string `db:"role"`
	CanDeleteEntries bool   `db:"can_delete_entries"`
}
