package models

import (
	"strings"
	"time"
)

// Employee is a job seeker.
type Employee struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	FirstName   string       `gorm:"size:100;not null" json:"first_name"`
	LastName    string       `gorm:"size:100;not null" json:"last_name"`
	Email       string       `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PhoneNumber string       `gorm:"size:15;not null" json:"phone_number"`
	AccountID   *uint        `gorm:"uniqueIndex" json:"account_id,omitempty"`
	AppliedJobs []JobDetails `gorm:"many2many:employee_applied_jobs;joinForeignKey:EmployeeID;joinReferences:JobID" json:"applied_jobs,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// FullName is derived from the first and last name and never stored.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
