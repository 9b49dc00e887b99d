// Package service implements the job board use cases on top of the repositories.
package service

import (
	"context"
	"errors"
	"math"
	"time"

	"jobboard/internal/authz"
	"jobboard/internal/events"
	"jobboard/internal/featureflags"
	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/observability"
	"jobboard/internal/repository"
	"jobboard/internal/validation"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 5
	MaxPageSize     = 100
)

type JobService struct {
	jobs      repository.JobRepository
	employers repository.EmployerRepository
	employees repository.EmployeeRepository
	events    events.Publisher
	flags     *featureflags.Manager
	now       func() time.Time
}

type ListJobsInput struct {
	SearchText string
	JobType    string
	Location   string
	Year       *int
	Page       int
	PageSize   int
	Caller     *models.Principal
}

// JobListing is one page of search results plus the unfiltered filter choices.
type JobListing struct {
	Jobs            []*models.JobDetails
	ApplicantCounts map[uint]int64
	Total           int64
	Page            int
	PageSize        int
	TotalPages      int
	Filters         *repository.FilterOptions
	CallerEmail     string
	IsEmployer      bool
}

// JobDetailsResult is what a caller may see of one job.
type JobDetailsResult struct {
	Job        *models.JobDetails
	IsOwner    bool
	CanManage  bool
	Applicants []models.Employee
	// HasApplied is set only for callers with the Employee role.
	HasApplied *bool
}

// JobInput carries the fields of a create or update request.
type JobInput struct {
	Fields     validation.JobFields
	EmployerID *uint
	// Version is the version the client read; zero means the one loaded by Update.
	Version uint
	Caller  *models.Principal
}

func NewJobService(
	jobs repository.JobRepository,
	employers repository.EmployerRepository,
	employees repository.EmployeeRepository,
	publisher events.Publisher,
	flags *featureflags.Manager,
) *JobService {
	return &JobService{
		jobs:      jobs,
		employers: employers,
		employees: employees,
		events:    publisher,
		flags:     flags,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func requireRole(caller *models.Principal, role models.Role) error {
	if !caller.Authenticated() {
		return models.NewUnauthorizedError("Authentication required")
	}
	if !caller.HasRole(role) {
		return models.NewForbiddenError("The " + string(role) + " role is required")
	}
	return nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	// Keep (page-1)*pageSize from overflowing; such a page is empty anyway.
	if maxPage := math.MaxInt32 / pageSize; page > maxPage {
		page = maxPage
	}
	return page, pageSize
}

// List searches jobs with ANDed optional filters, ordered by title.
func (s *JobService) List(ctx context.Context, in ListJobsInput) (_ *JobListing, err error) {
	ctx, span := observability.StartSpan(ctx, "jobs", "list")
	defer func() { observability.EndSpan(span, err) }()

	page, pageSize := normalizePage(in.Page, in.PageSize)

	jobs, total, err := s.jobs.Search(ctx, repository.JobFilter{
		SearchText: in.SearchText,
		JobType:    in.JobType,
		Location:   in.Location,
		Year:       in.Year,
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	})
	if err != nil {
		return nil, err
	}
	filters, err := s.jobs.FilterOptions(ctx)
	if err != nil {
		return nil, err
	}

	out := &JobListing{
		Jobs:       jobs,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
		Filters:    filters,
	}
	if in.Caller.Authenticated() {
		out.CallerEmail = in.Caller.Email
		out.IsEmployer = in.Caller.HasRole(models.RoleEmployer)
	}

	var accountID uint
	if in.Caller != nil {
		accountID = in.Caller.AccountID
	}
	if s.flags.Enabled(featureflags.ApplicantCounts, accountID) && len(jobs) > 0 {
		ids := make([]uint, 0, len(jobs))
		for _, j := range jobs {
			ids = append(ids, j.ID)
		}
		if out.ApplicantCounts, err = s.jobs.ApplicantCounts(ctx, ids); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetDetails returns the job, with applicants for its owner and the applied flag for employees.
func (s *JobService) GetDetails(ctx context.Context, jobID uint, caller *models.Principal) (*JobDetailsResult, error) {
	var (
		job *models.JobDetails
		err error
	)
	if caller.HasRole(models.RoleEmployer) {
		job, err = s.jobs.GetWithApplicants(ctx, jobID)
	} else {
		job, err = s.jobs.GetByID(ctx, jobID)
	}
	if err != nil {
		return nil, err
	}

	out := &JobDetailsResult{Job: job}
	if caller.HasRole(models.RoleEmployer) {
		out.IsOwner = authz.IsOwner(job, caller)
		out.CanManage = authz.IsOwnerOrAdmin(job, caller)
		if out.IsOwner {
			out.Applicants = job.Employees
			if out.Applicants == nil {
				out.Applicants = []models.Employee{}
			}
		}
		job.Employees = nil
	}

	if caller.HasRole(models.RoleEmployee) {
		applied := false
		employee, err := s.employees.GetByEmail(ctx, caller.Email)
		if err != nil {
			return nil, err
		}
		if employee != nil {
			if applied, err = s.employees.HasApplied(ctx, employee.ID, job.ID); err != nil {
				return nil, err
			}
		}
		out.HasApplied = &applied
	}
	return out, nil
}

// ListApplicants returns the applicants of a job owned by the calling employer.
func (s *JobService) ListApplicants(ctx context.Context, jobID uint, caller *models.Principal) (*models.JobDetails, []models.Employee, error) {
	if err := requireRole(caller, models.RoleEmployer); err != nil {
		return nil, nil, err
	}
	job, err := s.jobs.GetWithApplicants(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	if !authz.IsOwner(job, caller) {
		return nil, nil, models.NewForbiddenError("Only the owning employer can view applicants")
	}
	applicants := job.Employees
	if applicants == nil {
		applicants = []models.Employee{}
	}
	job.Employees = nil
	return job, applicants, nil
}

// EmployerChoices lists the employers a job can be assigned to.
func (s *JobService) EmployerChoices(ctx context.Context) ([]models.Employer, error) {
	return s.employers.List(ctx)
}

// resolveEmployer looks up an explicit employer id, recording a field error if it is unknown.
func (s *JobService) resolveEmployer(ctx context.Context, id *uint, errs validation.FieldErrors) (*models.Employer, error) {
	if id == nil || *id == 0 {
		return nil, nil
	}
	employer, err := s.employers.GetByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if employer == nil {
		errs.Add("EmployerId", "The selected employer does not exist.")
	}
	return employer, nil
}

// Create stores a new posting. Without an explicit employer the caller's own employer profile owns it.
func (s *JobService) Create(ctx context.Context, in JobInput) (_ *models.JobDetails, err error) {
	ctx, span := observability.StartSpan(ctx, "jobs", "create")
	defer func() { observability.EndSpan(span, err) }()

	if err := requireRole(in.Caller, models.RoleEmployer); err != nil {
		return nil, err
	}

	fields := in.Fields
	if fields.PostedDate.IsZero() {
		fields.PostedDate = s.now()
	}
	errs := validation.ValidateJob(fields)
	employer, err := s.resolveEmployer(ctx, in.EmployerID, errs)
	if err != nil {
		return nil, err
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	if employer == nil && (in.EmployerID == nil || *in.EmployerID == 0) {
		if employer, err = s.employers.GetByAccountID(ctx, in.Caller.AccountID); err != nil {
			return nil, err
		}
	}

	job := &models.JobDetails{
		Title:       fields.Title,
		Description: fields.Description,
		Company:     fields.Company,
		Location:    fields.Location,
		Salary:      fields.Salary,
		JobType:     fields.JobType,
		PostedDate:  fields.PostedDate,
	}
	if employer != nil {
		job.EmployerID = &employer.ID
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	job.Employer = employer

	middleware.JobsCreated.Inc()
	events.PublishBestEffort(ctx, s.events, events.Event{Type: events.JobCreated, JobID: job.ID, AccountID: in.Caller.AccountID})
	return job, nil
}

// GetForManage loads a job the caller may edit or delete.
func (s *JobService) GetForManage(ctx context.Context, jobID uint, caller *models.Principal) (*models.JobDetails, error) {
	if err := requireRole(caller, models.RoleEmployer); err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwnerOrAdmin(job, caller) {
		return nil, models.NewForbiddenError("Only the owning employer or an admin can manage this job")
	}
	return job, nil
}

// Update applies new field values to a job the caller owns (or any job for admins).
// Ownership is checked against the stored job before the payload is looked at.
func (s *JobService) Update(ctx context.Context, jobID uint, in JobInput) (_ *models.JobDetails, err error) {
	ctx, span := observability.StartSpan(ctx, "jobs", "update", observability.AttrJobID.Int64(int64(jobID)))
	defer func() { observability.EndSpan(span, err) }()

	current, err := s.GetForManage(ctx, jobID, in.Caller)
	if err != nil {
		return nil, err
	}

	fields := in.Fields
	if fields.PostedDate.IsZero() {
		fields.PostedDate = current.PostedDate
	}
	errs := validation.ValidateJob(fields)
	employer, err := s.resolveEmployer(ctx, in.EmployerID, errs)
	if err != nil {
		return nil, err
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	if employer == nil {
		employer = current.Employer
	}

	updated := &models.JobDetails{
		ID:          current.ID,
		Title:       fields.Title,
		Description: fields.Description,
		Company:     fields.Company,
		Location:    fields.Location,
		Salary:      fields.Salary,
		JobType:     fields.JobType,
		PostedDate:  fields.PostedDate,
		EmployerID:  current.EmployerID,
		CreatedAt:   current.CreatedAt,
	}
	if employer != nil {
		updated.EmployerID = &employer.ID
	}

	expected := current.Version
	if in.Version != 0 {
		expected = in.Version
	}
	if err := s.jobs.UpdateVersioned(ctx, updated, expected); err != nil {
		if !errors.Is(err, repository.ErrStaleVersion) {
			return nil, err
		}
		exists, existsErr := s.jobs.Exists(ctx, jobID)
		if existsErr != nil {
			return nil, existsErr
		}
		if !exists {
			return nil, models.NewNotFoundError("Job", jobID)
		}
		return nil, models.NewConflictError("The job was modified by another user. Reload it and try again.")
	}
	updated.Employer = employer
	return updated, nil
}

// Delete removes a job and its applications.
func (s *JobService) Delete(ctx context.Context, jobID uint, caller *models.Principal) (err error) {
	ctx, span := observability.StartSpan(ctx, "jobs", "delete", observability.AttrJobID.Int64(int64(jobID)))
	defer func() { observability.EndSpan(span, err) }()

	if _, err := s.GetForManage(ctx, jobID, caller); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, jobID); err != nil {
		return err
	}
	events.PublishBestEffort(ctx, s.events, events.Event{Type: events.JobDeleted, JobID: jobID, AccountID: caller.AccountID})
	return nil
}
