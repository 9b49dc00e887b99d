package seed

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"jobboard/internal/identity"
	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password of every generated account unless overridden.
const DemoPassword = "password123"

var jobTypes = []string{"Full-time", "Part-time", "Contract", "Internship", "Temporary"}

// DemoOptions control how much demo data Demo generates.
type DemoOptions struct {
	Employers int
	Employees int
	Jobs      int
	// ApplicationsPerEmployee is the upper bound of random applications per employee.
	ApplicationsPerEmployee int
	Clean                   bool
	Password                string
	// Seed makes the generated data reproducible; zero picks a random seed.
	Seed int64
	// PasswordCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	PasswordCost int
}

// DemoResult summarizes what Demo created.
type DemoResult struct {
	Employers    int
	Employees    int
	Jobs         int
	Applications int
}

// Factory builds demo entities with gofakeit and persists them.
type Factory struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	opts  DemoOptions
	hash  string
	taken map[string]struct{}
}

// NewFactory hashes the shared demo password once and returns a Factory bound to db.
func NewFactory(db *gorm.DB, opts DemoOptions) (*Factory, error) {
	if opts.Password == "" {
		opts.Password = DemoPassword
	}
	if opts.PasswordCost == 0 {
		opts.PasswordCost = bcrypt.DefaultCost
	}
	hash, err := identity.HashPassword(opts.Password, opts.PasswordCost)
	if err != nil {
		return nil, err
	}
	return &Factory{
		db:    db,
		faker: gofakeit.New(opts.Seed),
		opts:  opts,
		hash:  hash,
		taken: make(map[string]struct{}),
	}, nil
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// unique returns base, or base with a numeric suffix if it was already handed out.
func (f *Factory) unique(base string) string {
	return f.uniqueWith(base, func(i int) string { return fmt.Sprintf("%s %d", base, i) })
}

// uniqueEmail numbers the local part on collision.
func (f *Factory) uniqueEmail(local, domain string) string {
	return f.uniqueWith(local+"@"+domain, func(i int) string { return fmt.Sprintf("%s%d@%s", local, i, domain) })
}

func (f *Factory) uniqueWith(candidate string, next func(int) string) string {
	for i := 2; ; i++ {
		key := strings.ToUpper(candidate)
		if _, ok := f.taken[key]; !ok {
			f.taken[key] = struct{}{}
			return candidate
		}
		candidate = next(i)
	}
}

func slug(s string) string {
	return strings.ToLower(strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}), ""))
}

func (f *Factory) createAccount(ctx context.Context, tx *gorm.DB, userName, email string, role models.Role) (*models.Account, error) {
	accounts := repository.NewAccountRepository(tx)
	roles, err := accounts.FindRoles(ctx, role)
	if err != nil {
		return nil, err
	}
	account := &models.Account{
		UserName:     userName,
		Email:        email,
		PasswordHash: f.hash,
		Roles:        roles,
	}
	if err := accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// CreateEmployer creates an Employer linked to a new account named after the company.
func (f *Factory) CreateEmployer(ctx context.Context) (*models.Employer, error) {
	company := f.unique(truncate(f.faker.Company(), 90))
	domain := slug(company)
	if domain == "" {
		domain = "company"
	}
	email := f.uniqueEmail("jobs", domain+".example")

	var employer *models.Employer
	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := f.createAccount(ctx, tx, company, email, models.RoleEmployer)
		if err != nil {
			return err
		}
		employer = &models.Employer{CompanyName: company, ContactEmail: account.Email, AccountID: &account.ID}
		return repository.NewEmployerRepository(tx).Create(ctx, employer)
	})
	return employer, err
}

// CreateEmployee creates an Employee linked to a new account keyed by email.
func (f *Factory) CreateEmployee(ctx context.Context) (*models.Employee, error) {
	first := f.faker.FirstName()
	last := f.faker.LastName()
	email := f.uniqueEmail(slug(first)+"."+slug(last), strings.ToLower(f.faker.DomainName()))

	var employee *models.Employee
	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := f.createAccount(ctx, tx, email, email, models.RoleEmployee)
		if err != nil {
			return err
		}
		employee = &models.Employee{
			FirstName:   first,
			LastName:    last,
			Email:       email,
			PhoneNumber: f.faker.Phone(),
			AccountID:   &account.ID,
		}
		return repository.NewEmployeeRepository(tx).Create(ctx, employee)
	})
	return employee, err
}

// BuildJob returns an unsaved job owned by employer, posted within the last two years.
func (f *Factory) BuildJob(employer *models.Employer) *models.JobDetails {
	now := time.Now().UTC()
	job := &models.JobDetails{
		Title:       truncate(f.faker.JobLevel()+" "+f.faker.JobTitle(), 100),
		Description: truncate(f.faker.Sentence(14), 200),
		Location:    truncate(f.faker.City(), 200),
		JobType:     f.faker.RandomString(jobTypes),
		PostedDate:  f.faker.DateRange(now.AddDate(-2, 0, 0), now).UTC().Truncate(time.Second),
	}
	if f.faker.Number(0, 3) > 0 {
		salary := f.faker.Number(30, 180) * 1000
		job.Salary = &salary
	}
	if employer != nil {
		job.EmployerID = &employer.ID
		job.Company = employer.CompanyName
	} else {
		job.Company = truncate(f.faker.Company(), 100)
	}
	return job
}

// Clean removes every job board row, including accounts.
func Clean(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{
			&models.AppliedJob{},
			&models.JobDetails{},
			&models.Employee{},
			&models.Employer{},
			&models.Admin{},
		} {
			if err := all.Delete(model).Error; err != nil {
				return fmt.Errorf("clean %T: %w", model, err)
			}
		}
		if err := tx.Exec("DELETE FROM account_roles").Error; err != nil {
			return fmt.Errorf("clean account roles: %w", err)
		}
		if err := all.Delete(&models.Account{}).Error; err != nil {
			return fmt.Errorf("clean accounts: %w", err)
		}
		return nil
	})
}

// Demo fills the database with fake employers, employees, jobs and applications.
func Demo(ctx context.Context, db *gorm.DB, opts DemoOptions) (DemoResult, error) {
	var res DemoResult
	if opts.Clean {
		if err := Clean(ctx, db); err != nil {
			return res, err
		}
	}
	if err := EnsureRoles(ctx, db); err != nil {
		return res, err
	}

	f, err := NewFactory(db, opts)
	if err != nil {
		return res, err
	}

	employers := make([]*models.Employer, 0, opts.Employers)
	for i := 0; i < opts.Employers; i++ {
		e, err := f.CreateEmployer(ctx)
		if err != nil {
			return res, fmt.Errorf("create employer: %w", err)
		}
		employers = append(employers, e)
	}
	res.Employers = len(employers)

	employees := make([]*models.Employee, 0, opts.Employees)
	for i := 0; i < opts.Employees; i++ {
		e, err := f.CreateEmployee(ctx)
		if err != nil {
			return res, fmt.Errorf("create employee: %w", err)
		}
		employees = append(employees, e)
	}
	res.Employees = len(employees)

	jobs := make([]*models.JobDetails, 0, opts.Jobs)
	for i := 0; i < opts.Jobs; i++ {
		var owner *models.Employer
		if len(employers) > 0 {
			owner = employers[f.faker.Number(0, len(employers)-1)]
		}
		jobs = append(jobs, f.BuildJob(owner))
	}
	if err := repository.NewJobRepository(db).CreateBatch(ctx, jobs); err != nil {
		return res, fmt.Errorf("create jobs: %w", err)
	}
	res.Jobs = len(jobs)

	maxApps := opts.ApplicationsPerEmployee
	if maxApps <= 0 {
		maxApps = 3
	}
	if len(jobs) > 0 {
		apps := repository.NewEmployeeRepository(db)
		for _, e := range employees {
			for n := f.faker.Number(0, maxApps); n > 0; n-- {
				job := jobs[f.faker.Number(0, len(jobs)-1)]
				added, err := apps.AddApplication(ctx, e.ID, job.ID)
				if err != nil {
					return res, fmt.Errorf("create application: %w", err)
				}
				if added {
					res.Applications++
				}
			}
		}
	}

	middleware.Logger.InfoContext(ctx, "demo data generated",
		"employers", res.Employers,
		"employees", res.Employees,
		"jobs", res.Jobs,
		"applications", res.Applications,
	)
	return res, nil
}
