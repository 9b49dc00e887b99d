package server

import (
	"time"

	"jobboard/internal/authz"
	"jobboard/internal/models"
	"jobboard/internal/repository"
	"jobboard/internal/service"
)

// jobQuery is the search state echoed back with a listing.
type jobQuery struct {
	SearchText string `json:"searchText,omitempty" query:"searchText"`
	JobType    string `json:"jobType,omitempty" query:"jobType"`
	Location   string `json:"location,omitempty" query:"location"`
	Year       *int   `json:"year,omitempty" query:"year"`
	Page       int    `json:"page,omitempty" query:"page"`
	PageSize   int    `json:"pageSize,omitempty" query:"pageSize"`
}

type jobSummary struct {
	*models.JobDetails
	ApplicantCount *int64 `json:"applicantCount,omitempty"`
	CanManage      bool   `json:"canManage"`
}

type jobListView struct {
	Jobs        []jobSummary              `json:"jobs"`
	Total       int64                     `json:"total"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"pageSize"`
	TotalPages  int                       `json:"totalPages"`
	Filters     *repository.FilterOptions `json:"filters"`
	Query       jobQuery                  `json:"query"`
	CallerEmail string                    `json:"callerEmail,omitempty"`
	IsEmployer  bool                      `json:"isEmployer"`
}

func newJobListView(l *service.JobListing, q jobQuery, caller *models.Principal) jobListView {
	v := jobListView{
		Jobs:        make([]jobSummary, 0, len(l.Jobs)),
		Total:       l.Total,
		Page:        l.Page,
		PageSize:    l.PageSize,
		TotalPages:  l.TotalPages,
		Filters:     l.Filters,
		Query:       q,
		CallerEmail: l.CallerEmail,
		IsEmployer:  l.IsEmployer,
	}
	v.Query.Page, v.Query.PageSize = l.Page, l.PageSize
	for _, job := range l.Jobs {
		s := jobSummary{JobDetails: job, CanManage: l.IsEmployer && authz.IsOwnerOrAdmin(job, caller)}
		if l.ApplicantCounts != nil {
			n := l.ApplicantCounts[job.ID]
			s.ApplicantCount = &n
		}
		v.Jobs = append(v.Jobs, s)
	}
	return v
}

type applicantView struct {
	ID          uint   `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func newApplicantViews(employees []models.Employee) []applicantView {
	out := make([]applicantView, 0, len(employees))
	for _, e := range employees {
		out = append(out, applicantView{
			ID:          e.ID,
			FullName:    e.FullName(),
			Email:       e.Email,
			PhoneNumber: e.PhoneNumber,
		})
	}
	return out
}

type jobDetailsView struct {
	Job        *models.JobDetails `json:"job"`
	IsOwner    bool               `json:"isOwner"`
	CanManage  bool               `json:"canManage"`
	Applicants []applicantView    `json:"applicants"`
	HasApplied *bool              `json:"hasApplied,omitempty"`
	CSRFToken  string             `json:"csrfToken,omitempty"`
}

type employerChoice struct {
	ID          uint   `json:"id"`
	CompanyName string `json:"companyName"`
	Selected    bool   `json:"selected"`
}

func newEmployerChoices(employers []models.Employer, selected *uint) []employerChoice {
	out := make([]employerChoice, 0, len(employers))
	for _, e := range employers {
		out = append(out, employerChoice{
			ID:          e.ID,
			CompanyName: e.CompanyName,
			Selected:    selected != nil && *selected == e.ID,
		})
	}
	return out
}

// jobFormView backs the create and edit forms.
type jobFormView struct {
	Job       jobForm          `json:"job"`
	Employers []employerChoice `json:"employers"`
	CSRFToken string           `json:"csrfToken"`
}

func jobFormFrom(job *models.JobDetails) jobForm {
	return jobForm{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Company:     job.Company,
		Location:    job.Location,
		Salary:      job.Salary,
		JobType:     job.JobType,
		PostedDate:  job.PostedDate.UTC().Format(time.RFC3339),
		EmployerID:  job.EmployerID,
		Version:     job.Version,
	}
}
