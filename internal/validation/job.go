package validation

import (
	"time"
)

// Length limits for job postings.
const (
	MaxJobTitle       = 100
	MaxJobDescription = 200
	MaxJobCompany     = 100
	MaxJobLocation    = 200
	MaxJobType        = 50
)

// JobFields are the user-editable parts of a posting.
type JobFields struct {
	Title       string
	Description string
	Company     string
	Location    string
	JobType     string
	Salary      *int
	PostedDate  time.Time
}

// ValidateJob checks required fields and length bounds. PostedDate is not
// checked here because callers default it before validation.
func ValidateJob(in JobFields) FieldErrors {
	errs := FieldErrors{}
	errs.Required("Title", in.Title, MaxJobTitle)
	errs.Required("Description", in.Description, MaxJobDescription)
	errs.Required("Company", in.Company, MaxJobCompany)
	errs.Required("Location", in.Location, MaxJobLocation)
	errs.Required("JobType", in.JobType, MaxJobType)
	if in.Salary != nil && *in.Salary < 0 {
		errs.Add("Salary", "The field Salary must not be negative.")
	}
	return errs
}
