package mapping

import (
	"database/sql"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:           d.UserID,
		Name:             d.Name,
		Email:            d.Email,
		PasswordHash:     d.PasswordHash,
		AuthProvider:     string(d.AuthProvider),
		AuditFields:      ToModelAuditFields(d.AuditFields),
		DeletedAt:        d.DeletedAt,
		RefreshTokenHash: d.RefreshTokenHash,
	}
	if m.AuthProvider == "" {
		m.AuthProvider = string(domain.AuthProviderLocal)
	}
	if d.ProviderUserID != nil {
		m.ProviderUserID = sql.NullString{String: *d.ProviderUserID, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:           m.UserID,
		Name:             m.Name,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		AuthProvider:     domain.AuthProvider(m.AuthProvider),
		RefreshTokenHash: m.RefreshTokenHash,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
		DeletedAt:        m.DeletedAt,
	}
	if m.ProviderUserID.Valid {
		v := m.ProviderUserID.String
		d.ProviderUserID = &v
	}
	if m.RefreshTokenExpiryTime.Valid {
		v := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &v
	}
	return d
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	return toDomainSlice(ms, ToDomainUser)
}
