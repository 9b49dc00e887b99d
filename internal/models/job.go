// Package models defines the persisted job board types and the application error taxonomy.
package models

import "time"

// JobDetails is a single job posting.
type JobDetails struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:100;not null;index" json:"title"`
	Description string     `gorm:"size:200;not null" json:"description"`
	Company     string     `gorm:"size:100;not null" json:"company"`
	Location    string     `gorm:"size:200;not null;index" json:"location"`
	Salary      *int       `json:"salary,omitempty"`
	JobType     string     `gorm:"size:50;not null;index" json:"job_type"`
	PostedDate  time.Time  `gorm:"not null;index" json:"posted_date"`
	EmployerID  *uint      `gorm:"index" json:"employer_id,omitempty"`
	Employer    *Employer  `gorm:"foreignKey:EmployerID" json:"employer,omitempty"`
	Employees   []Employee `gorm:"many2many:employee_applied_jobs;joinForeignKey:JobID;joinReferences:EmployeeID" json:"employees,omitempty"`
	// Version is bumped on every update and checked for optimistic concurrency.
	Version   uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (JobDetails) TableName() string {
	return "job_details"
}

// AppliedJob is the join row between an employee and a job they applied to.
type AppliedJob struct {
	EmployeeID uint      `gorm:"primaryKey" json:"employee_id"`
	JobID      uint      `gorm:"primaryKey;index" json:"job_id"`
	AppliedAt  time.Time `gorm:"autoCreateTime" json:"applied_at"`
}

func (AppliedJob) TableName() string {
	return "employee_applied_jobs"
}
