package models

import (
	"slices"
	"strings"
	"time"
)

// Account is a sign-in identity. Employers, employees and admins link to it by AccountID.
type Account struct {
	ID                 uint         `gorm:"primaryKey" json:"id"`
	UserName           string       `gorm:"size:256;not null" json:"user_name"`
	NormalizedUserName string       `gorm:"size:256;uniqueIndex;not null" json:"-"`
	Email              string       `gorm:"size:256;uniqueIndex;not null" json:"email"`
	PasswordHash       string       `gorm:"not null" json:"-"`
	Roles              []RoleRecord `gorm:"many2many:account_roles;joinForeignKey:AccountID;joinReferences:RoleID" json:"roles,omitempty"`
	AccessFailedCount  int          `gorm:"not null;default:0" json:"-"`
	LockoutEnd         *time.Time   `json:"-"`
	TwoFactorEnabled   bool         `gorm:"not null;default:false" json:"two_factor_enabled"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// NormalizeUserName returns the lookup key for a user name.
func NormalizeUserName(userName string) string {
	return strings.ToUpper(strings.TrimSpace(userName))
}

// NormalizeEmail returns the stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasRole reports whether the account holds role.
func (a *Account) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r.Name == role {
			return true
		}
	}
	return false
}

// IsLockedOut reports whether sign-in is blocked at now.
func (a *Account) IsLockedOut(now time.Time) bool {
	return a.LockoutEnd != nil && a.LockoutEnd.After(now)
}

// Principal is the authenticated caller, resolved once per request.
type Principal struct {
	AccountID   uint   `json:"account_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Roles       []Role `json:"roles"`
}

// NewPrincipal builds the principal for an account.
func NewPrincipal(a *Account) *Principal {
	p := &Principal{
		AccountID:   a.ID,
		Email:       a.Email,
		DisplayName: a.UserName,
	}
	for _, r := range a.Roles {
		p.Roles = append(p.Roles, r.Name)
	}
	slices.Sort(p.Roles)
	return p
}

// Authenticated reports whether p represents a signed-in account.
func (p *Principal) Authenticated() bool {
	return p != nil && p.AccountID != 0
}

// HasRole is safe to call on a nil principal.
func (p *Principal) HasRole(role Role) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.Roles, role)
}
