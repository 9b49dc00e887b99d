package service

import (
	"context"
	"testing"

	"jobboard/internal/events"
	"jobboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationService_ApplyIsIdempotent(t *testing.T) {
	f := newFixture(t, "")
	employer := f.registerEmployer(t, "Acme", "hr@acme.test")
	employee := f.registerEmployee(t, "Ada", "ada@example.com")
	ctx := context.Background()
	job := f.createJob(t, employer, "Go Developer")
	other := f.createJob(t, employer, "Rust Developer")

	require.NoError(t, f.apps.Apply(ctx, job.ID, employee))
	require.NoError(t, f.apps.Apply(ctx, job.ID, employee))

	var rows int64
	require.NoError(t, f.db.Model(&models.AppliedJob{}).Where("job_id = ?", job.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	require.NoError(t, f.apps.CancelApply(ctx, other.ID, employee), "withdrawing a job never applied to is a no-op")

	var total int64
	require.NoError(t, f.db.Model(&models.AppliedJob{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)

	var applied int
	for _, typ := range f.published.types() {
		if typ == events.ApplicationCreated {
			applied++
		}
	}
	assert.Equal(t, 1, applied, "the repeated apply publishes nothing")
	assert.NotContains(t, f.published.types(), events.ApplicationWithdrawn)
}

func TestApplicationService_CancelApply(t *testing.T) {
	f := newFixture(t, "")
	employer := f.registerEmployer(t, "Acme", "hr@acme.test")
	employee := f.registerEmployee(t, "Ada", "ada@example.com")
	ctx := context.Background()
	job := f.createJob(t, employer, "Go Developer")

	require.NoError(t, f.apps.Apply(ctx, job.ID, employee))
	require.NoError(t, f.apps.CancelApply(ctx, job.ID, employee))

	jobs, err := f.apps.ListMyApplications(ctx, employee)
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.Contains(t, f.published.types(), events.ApplicationWithdrawn)
}

func TestApplicationService_Resolution(t *testing.T) {
	f := newFixture(t, "")
	employer := f.registerEmployer(t, "Acme", "hr@acme.test")
	employee := f.registerEmployee(t, "Ada", "ada@example.com")
	ctx := context.Background()
	job := f.createJob(t, employer, "Go Developer")

	tests := []struct {
		name     string
		jobID    uint
		caller   *models.Principal
		wantCode string
	}{
		{"Anonymous", job.ID, nil, models.CodeUnauthorized},
		{"No Employee Profile", job.ID, employer, models.CodeUnauthorized},
		{"Missing Job", 9999, employee, models.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.apps.Apply(ctx, tt.jobID, tt.caller)
			assert.True(t, models.IsCode(err, tt.wantCode), "apply: %v", err)
			err = f.apps.CancelApply(ctx, tt.jobID, tt.caller)
			assert.True(t, models.IsCode(err, tt.wantCode), "cancel: %v", err)
		})
	}

	_, err := f.apps.ListMyApplications(ctx, employer)
	assert.True(t, models.IsCode(err, models.CodeUnauthorized))
}

func TestApplicationService_ListMyApplications(t *testing.T) {
	f := newFixture(t, "")
	employer := f.registerEmployer(t, "Acme", "hr@acme.test")
	employee := f.registerEmployee(t, "Ada", "ada@example.com")
	ctx := context.Background()

	jobs, err := f.apps.ListMyApplications(ctx, employee)
	require.NoError(t, err)
	assert.Equal(t, []models.JobDetails{}, jobs)

	b := f.createJob(t, employer, "Backend Developer")
	a := f.createJob(t, employer, "Analyst")
	require.NoError(t, f.apps.Apply(ctx, b.ID, employee))
	require.NoError(t, f.apps.Apply(ctx, a.ID, employee))

	jobs, err = f.apps.ListMyApplications(ctx, employee)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Analyst", jobs[0].Title)
	assert.Equal(t, "Backend Developer", jobs[1].Title)
	for _, j := range jobs {
		require.NotNil(t, j.Employer)
		assert.Equal(t, "Acme", j.Employer.CompanyName)
	}
}
