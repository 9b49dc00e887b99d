// Package authz decides who may manage a job posting.
package authz

import (
	"strings"

	"jobboard/internal/models"
)

// IsOwner reports whether caller owns job through its employer.
//
// An employer linked to an account is owned by that account only. Employers
// without an account fall back to matching the contact email or the company
// name against the caller's email or display name.
func IsOwner(job *models.JobDetails, caller *models.Principal) bool {
	if job == nil || job.Employer == nil || !caller.Authenticated() {
		return false
	}
	employer := job.Employer
	if employer.AccountID != nil {
		return *employer.AccountID == caller.AccountID
	}
	if employer.ContactEmail != "" && strings.EqualFold(employer.ContactEmail, caller.Email) {
		return true
	}
	return employer.CompanyName != "" && employer.CompanyName == caller.DisplayName
}

// IsOwnerOrAdmin grants the Admin role an override on every job.
func IsOwnerOrAdmin(job *models.JobDetails, caller *models.Principal) bool {
	if caller.HasRole(models.RoleAdmin) && caller.Authenticated() {
		return job != nil
	}
	return IsOwner(job, caller)
}
