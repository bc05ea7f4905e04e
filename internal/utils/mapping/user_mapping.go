package mapping

import (
	"database/sql"

	"github.com/SscSPs/finai_backend/internal/core/domain"
	"github.com/SscSPs/finai_backend/internal/models"
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:           d.UserID,
		Name:             d.Name,
		Email:            d.Email,
		PasswordHash:     nullString(d.PasswordHash),
		AuthProvider:     string(d.AuthProvider),
		ProviderUserID:   nullString(d.ProviderUserID),
		AuditFields:      ToModelAuditFields(d.AuditFields),
		RefreshTokenHash: nullString(d.RefreshTokenHash),
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
		PasswordHash:     m.PasswordHash.String,
		AuthProvider:     domain.AuthProvider(m.AuthProvider),
		ProviderUserID:   m.ProviderUserID.String,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
		RefreshTokenHash: m.RefreshTokenHash.String,
	}
	if m.RefreshTokenExpiryTime.Valid {
		expiry := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &expiry
	}
	return d
}
