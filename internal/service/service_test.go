package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"jobboard/internal/cache"
	"jobboard/internal/events"
	"jobboard/internal/featureflags"
	"jobboard/internal/identity"
	"jobboard/internal/models"
	"jobboard/internal/repository"
	"jobboard/internal/testutil"
	"jobboard/internal/validation"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	db        *gorm.DB
	mr        *miniredis.Miniredis
	idm       *identity.Manager
	published *recordingPublisher
	jobs      *JobService
	apps      *ApplicationService
	accounts  *AccountService
}

func newFixture(t *testing.T, flags string) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	mr, rdb := testutil.NewRedis(t)
	cache.SetClient(rdb)
	t.Cleanup(func() { cache.SetClient(nil) })

	idm := identity.NewManager(repository.NewAccountRepository(db), rdb, identity.Options{
		Secret:            "service-test-secret-with-32-characters",
		SessionTTL:        time.Hour,
		MaxFailedAttempts: 3,
		LockoutDuration:   5 * time.Minute,
		PasswordCost:      bcrypt.MinCost,
	})
	require.NoError(t, idm.EnsureRoles(context.Background()))

	ff := featureflags.NewManager(flags)
	pub := &recordingPublisher{}
	jobRepo := repository.NewJobRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)

	return &fixture{
		db:        db,
		mr:        mr,
		idm:       idm,
		published: pub,
		jobs:      NewJobService(jobRepo, repository.NewEmployerRepository(db), employeeRepo, pub, ff),
		apps:      NewApplicationService(jobRepo, employeeRepo, pub),
		accounts:  NewAccountService(db, idm, ff),
	}
}

func (f *fixture) registerEmployer(t *testing.T, company, email string) *models.Principal {
	t.Helper()
	res, err := f.accounts.RegisterEmployer(context.Background(), validation.EmployerRegistration{
		CompanyName:     company,
		ContactEmail:    email,
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Session)
	return res.Session.Principal
}

func (f *fixture) registerEmployee(t *testing.T, first, email string) *models.Principal {
	t.Helper()
	res, err := f.accounts.RegisterEmployee(context.Background(), validation.EmployeeRegistration{
		FirstName:       first,
		LastName:        "Tester",
		Email:           email,
		PhoneNumber:     "+49 30 1234567",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Session)
	return res.Session.Principal
}

func (f *fixture) admin(t *testing.T) *models.Principal {
	t.Helper()
	account, err := f.idm.CreateAccount(context.Background(), identity.NewAccount{
		UserName: "root@jobboard.test",
		Email:    "root@jobboard.test",
		Password: "secret1",
		Roles:    []models.Role{models.RoleAdmin, models.RoleEmployer},
	})
	require.NoError(t, err)
	return models.NewPrincipal(account)
}

func sampleFields(title string) validation.JobFields {
	return validation.JobFields{
		Title:       title,
		Description: "Build and run services",
		Company:     "Acme",
		Location:    "Remote",
		JobType:     "Full-time",
		PostedDate:  time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) createJob(t *testing.T, caller *models.Principal, title string) *models.JobDetails {
	t.Helper()
	job, err := f.jobs.Create(context.Background(), JobInput{Fields: sampleFields(title), Caller: caller})
	require.NoError(t, err)
	return job
}

func (f *fixture) insertJobs(t *testing.T, n int) {
	t.Helper()
	jobs := make([]*models.JobDetails, 0, n)
	for i := 1; i <= n; i++ {
		jobs = append(jobs, &models.JobDetails{
			Title:       fmt.Sprintf("Job %02d", i),
			Description: "Generated",
			Company:     "Initech",
			Location:    "Berlin",
			JobType:     "Contract",
			PostedDate:  time.Date(2024, 1, i, 0, 0, 0, 0, time.UTC),
		})
	}
	require.NoError(t, repository.NewJobRepository(f.db).CreateBatch(context.Background(), jobs))
}
