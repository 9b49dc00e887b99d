package service

import (
	"context"

	"jobboard/internal/events"
	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/observability"
	"jobboard/internal/repository"
)

// ApplicationService lets employees apply to and withdraw from jobs.
type ApplicationService struct {
	jobs      repository.JobRepository
	employees repository.EmployeeRepository
	events    events.Publisher
}

func NewApplicationService(jobs repository.JobRepository, employees repository.EmployeeRepository, publisher events.Publisher) *ApplicationService {
	return &ApplicationService{jobs: jobs, employees: employees, events: publisher}
}

// resolveEmployee maps the caller to an Employee record by email.
func (s *ApplicationService) resolveEmployee(ctx context.Context, caller *models.Principal) (*models.Employee, error) {
	if !caller.Authenticated() {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	employee, err := s.employees.GetByEmail(ctx, caller.Email)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, models.NewUnauthorizedError("No employee profile matches the signed-in account")
	}
	return employee, nil
}

func (s *ApplicationService) requireJob(ctx context.Context, jobID uint) error {
	exists, err := s.jobs.Exists(ctx, jobID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Job", jobID)
	}
	return nil
}

// Apply records an application. Applying twice is a no-op.
func (s *ApplicationService) Apply(ctx context.Context, jobID uint, caller *models.Principal) (err error) {
	ctx, span := observability.StartSpan(ctx, "applications", "apply", observability.AttrJobID.Int64(int64(jobID)))
	defer func() { observability.EndSpan(span, err) }()

	employee, err := s.resolveEmployee(ctx, caller)
	if err != nil {
		return err
	}
	if err := s.requireJob(ctx, jobID); err != nil {
		return err
	}

	added, err := s.employees.AddApplication(ctx, employee.ID, jobID)
	if err != nil {
		return err
	}
	if added {
		middleware.Applications.WithLabelValues("apply").Inc()
		events.PublishBestEffort(ctx, s.events, events.Event{
			Type:       events.ApplicationCreated,
			JobID:      jobID,
			EmployeeID: employee.ID,
			AccountID:  caller.AccountID,
		})
	}
	return nil
}

// CancelApply withdraws an application if one exists.
func (s *ApplicationService) CancelApply(ctx context.Context, jobID uint, caller *models.Principal) (err error) {
	ctx, span := observability.StartSpan(ctx, "applications", "cancel", observability.AttrJobID.Int64(int64(jobID)))
	defer func() { observability.EndSpan(span, err) }()

	employee, err := s.resolveEmployee(ctx, caller)
	if err != nil {
		return err
	}
	if err := s.requireJob(ctx, jobID); err != nil {
		return err
	}

	removed, err := s.employees.RemoveApplication(ctx, employee.ID, jobID)
	if err != nil {
		return err
	}
	if removed {
		middleware.Applications.WithLabelValues("withdraw").Inc()
		events.PublishBestEffort(ctx, s.events, events.Event{
			Type:       events.ApplicationWithdrawn,
			JobID:      jobID,
			EmployeeID: employee.ID,
			AccountID:  caller.AccountID,
		})
	}
	return nil
}

// ListMyApplications returns the caller's applied jobs, each with its employer.
func (s *ApplicationService) ListMyApplications(ctx context.Context, caller *models.Principal) ([]models.JobDetails, error) {
	if !caller.Authenticated() {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	employee, err := s.employees.GetByEmailWithApplications(ctx, caller.Email)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, models.NewUnauthorizedError("No employee profile matches the signed-in account")
	}
	if employee.AppliedJobs == nil {
		return []models.JobDetails{}, nil
	}
	return employee.AppliedJobs, nil
}
