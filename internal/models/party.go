package models

import "github.com/shopspring/decimal"

type Party struct {
	PartyID        string          `db:"party_id"`
	BusinessID     string          `db:"business_id"`
	Name           string          `db:"name"`
	PartyType      string          `db:"party_type"`
	Phone          *string         `db:"phone"`
	Email          *string         `db:"email"`
	Address        *string         `db:"address"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
