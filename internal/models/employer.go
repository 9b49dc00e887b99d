package models

import "time"

// Employer is a company that posts jobs.
type Employer struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	CompanyName  string       `gorm:"size:100;not null;index" json:"company_name"`
	ContactEmail string       `gorm:"size:100;not null;index" json:"contact_email"`
	AccountID    *uint        `gorm:"uniqueIndex" json:"account_id,omitempty"`
	Jobs         []JobDetails `gorm:"foreignKey:EmployerID" json:"jobs,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
