// Package seed loads the built-in sample jobs and generates demo data for
// development databases.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/repository"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed sample_jobs.yml
var sampleJobsYAML []byte

type sampleJob struct {
	Title       string `yaml:"title"`
	Company     string `yaml:"company"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
	Salary      *int   `yaml:"salary"`
	JobType     string `yaml:"job_type"`
	PostedDate  string `yaml:"posted_date"`
}

// SampleJobs parses the embedded sample job list.
func SampleJobs() ([]*models.JobDetails, error) {
	return parseSampleJobs(sampleJobsYAML)
}

func parseSampleJobs(raw []byte) ([]*models.JobDetails, error) {
	var doc struct {
		Jobs []sampleJob `yaml:"jobs"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse sample jobs: %w", err)
	}

	jobs := make([]*models.JobDetails, 0, len(doc.Jobs))
	for i, s := range doc.Jobs {
		posted, err := time.Parse("2006-01-02", s.PostedDate)
		if err != nil {
			return nil, fmt.Errorf("sample job %d (%s): posted_date: %w", i, s.Title, err)
		}
		jobs = append(jobs, &models.JobDetails{
			Title:       s.Title,
			Company:     s.Company,
			Location:    s.Location,
			Description: s.Description,
			Salary:      s.Salary,
			JobType:     s.JobType,
			PostedDate:  posted,
		})
	}
	return jobs, nil
}

// EnsureRoles creates the Admin, Employer and Employee roles if missing.
func EnsureRoles(ctx context.Context, db *gorm.DB) error {
	return repository.NewAccountRepository(db).EnsureRoles(ctx, models.AllRoles...)
}

// EnsurePopulated creates the roles and, when the job table is empty, inserts the sample jobs.
// It reports how many jobs were inserted.
func EnsurePopulated(ctx context.Context, db *gorm.DB) (int, error) {
	if err := EnsureRoles(ctx, db); err != nil {
		return 0, fmt.Errorf("ensure roles: %w", err)
	}

	jobs := repository.NewJobRepository(db)
	count, err := jobs.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	sample, err := SampleJobs()
	if err != nil {
		return 0, err
	}
	if err := jobs.CreateBatch(ctx, sample); err != nil {
		return 0, fmt.Errorf("insert sample jobs: %w", err)
	}
	middleware.Logger.InfoContext(ctx, "sample jobs inserted", "count", len(sample))
	return len(sample), nil
}
