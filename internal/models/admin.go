package models

import "time"

// Admin is the profile of an account holding the Admin role.
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	ContactEmail string    `gorm:"size:100;uniqueIndex;not null" json:"contact_email"`
	AccountID    *uint     `gorm:"uniqueIndex" json:"account_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
