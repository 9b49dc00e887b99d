package repository

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"jobboard/internal/cache"
	"jobboard/internal/models"

	"gorm.io/gorm"
)

// ErrStaleVersion is returned by UpdateVersioned when no row matched the id and expected version.
var ErrStaleVersion = errors.New("job was modified or deleted by another request")

// JobFilter narrows a job search. Empty strings and a nil Year mean "any".
type JobFilter struct {
	SearchText string
	JobType    string
	Location   string
	Year       *int
	Limit      int
	Offset     int
}

// FilterOptions are the distinct values offered as filters, computed across all jobs.
type FilterOptions struct {
	JobTypes  []string `json:"job_types"`
	Locations []string `json:"locations"`
	Years     []int    `json:"years"`
}

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	Search(ctx context.Context, filter JobFilter) ([]*models.JobDetails, int64, error)
	FilterOptions(ctx context.Context) (*FilterOptions, error)
	ApplicantCounts(ctx context.Context, jobIDs []uint) (map[uint]int64, error)
	GetByID(ctx context.Context, id uint) (*models.JobDetails, error)
	GetWithApplicants(ctx context.Context, id uint) (*models.JobDetails, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, job *models.JobDetails) error
	CreateBatch(ctx context.Context, jobs []*models.JobDetails) error
	UpdateVersioned(ctx context.Context, job *models.JobDetails, expectedVersion uint) error
	Delete(ctx context.Context, id uint) error
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository returns a gorm-backed JobRepository.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching text literally anywhere in a
// column. It pairs with ESCAPE '\', which sqlite and postgres both accept.
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}

func filterScope(f JobFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if text := strings.TrimSpace(f.SearchText); text != "" {
			like := containsPattern(text)
			db = db.Where(`(title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR company LIKE ? ESCAPE '\')`, like, like, like)
		}
		if f.JobType != "" {
			db = db.Where("job_type = ?", f.JobType)
		}
		if f.Location != "" {
			db = db.Where("location = ?", f.Location)
		}
		if f.Year != nil {
			start := time.Date(*f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
			db = db.Where("posted_date >= ? AND posted_date < ?", start, start.AddDate(1, 0, 0))
		}
		return db
	}
}

func (r *jobRepository) Search(ctx context.Context, f JobFilter) ([]*models.JobDetails, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.JobDetails{}).Scopes(filterScope(f)).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var jobs []*models.JobDetails
	q := r.db.WithContext(ctx).
		Scopes(filterScope(f)).
		Preload("Employer").
		Order("title ASC").
		Order("id ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&jobs).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return jobs, total, nil
}

func (r *jobRepository) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	var opts FilterOptions
	err := cache.Aside(ctx, cache.JobFiltersKey, &opts, cache.JobFiltersTTL, func() error {
		db := r.db.WithContext(ctx).Model(&models.JobDetails{})
		if err := db.Distinct("job_type").Order("job_type ASC").Pluck("job_type", &opts.JobTypes).Error; err != nil {
			return models.NewInternalError(err)
		}
		db = r.db.WithContext(ctx).Model(&models.JobDetails{})
		if err := db.Distinct("location").Order("location ASC").Pluck("location", &opts.Locations).Error; err != nil {
			return models.NewInternalError(err)
		}
		years, err := r.distinctYears(ctx)
		if err != nil {
			return models.NewInternalError(err)
		}
		opts.Years = years
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &opts, nil
}

// distinctYears returns posting years, newest first.
func (r *jobRepository) distinctYears(ctx context.Context) ([]int, error) {
	years := []int{}
	if r.db.Dialector.Name() == "postgres" {
		err := r.db.WithContext(ctx).
			Raw(`SELECT DISTINCT CAST(EXTRACT(YEAR FROM posted_date) AS INTEGER) AS year FROM job_details ORDER BY year DESC`).
			Scan(&years).Error
		return years, err
	}

	// SQLite stores timestamps as text; reduce in Go instead of parsing them in SQL.
	var dates []time.Time
	if err := r.db.WithContext(ctx).Model(&models.JobDetails{}).Pluck("posted_date", &dates).Error; err != nil {
		return nil, err
	}
	seen := make(map[int]struct{}, len(dates))
	for _, d := range dates {
		y := d.UTC().Year()
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			years = append(years, y)
		}
	}
	slices.Sort(years)
	slices.Reverse(years)
	return years, nil
}

func (r *jobRepository) ApplicantCounts(ctx context.Context, jobIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(jobIDs))
	if len(jobIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		JobID uint
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.AppliedJob{}).
		Select("job_id, COUNT(*) AS count").
		Where("job_id IN ?", jobIDs).
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, row := range rows {
		counts[row.JobID] = row.Count
	}
	return counts, nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uint) (*models.JobDetails, error) {
	var job models.JobDetails
	if hit, err := cache.GetJSON(ctx, cache.JobKey(id), &job); err == nil && hit {
		return &job, nil
	}

	job = models.JobDetails{}
	if err := r.db.WithContext(ctx).Preload("Employer").First(&job, id).Error; err != nil {
		return nil, notFoundOr(err, "Job", id)
	}
	r.cacheJob(ctx, &job)
	return &job, nil
}

// cacheJob stores job and then re-reads its version. A Delete or Update that
// committed and invalidated between our read and our write leaves no matching
// row, so the copy just written is dropped again.
func (r *jobRepository) cacheJob(ctx context.Context, job *models.JobDetails) {
	if cache.GetClient() == nil {
		return
	}
	key := cache.JobKey(job.ID)
	if err := cache.SetJSON(ctx, key, job, cache.JobTTL); err != nil {
		return
	}
	var current int64
	err := r.db.WithContext(ctx).
		Model(&models.JobDetails{}).
		Where("id = ? AND version = ?", job.ID, job.Version).
		Count(&current).Error
	if err != nil || current == 0 {
		cache.Invalidate(ctx, key)
	}
}

func (r *jobRepository) GetWithApplicants(ctx context.Context, id uint) (*models.JobDetails, error) {
	var job models.JobDetails
	err := r.db.WithContext(ctx).
		Preload("Employer").
		Preload("Employees", func(db *gorm.DB) *gorm.DB {
			return db.Order("last_name ASC").Order("first_name ASC")
		}).
		First(&job, id).Error
	if err != nil {
		return nil, notFoundOr(err, "Job", id)
	}
	return &job, nil
}

func (r *jobRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.JobDetails{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *jobRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.JobDetails{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *jobRepository) Create(ctx context.Context, job *models.JobDetails) error {
	if job.Version == 0 {
		job.Version = 1
	}
	if err := r.db.WithContext(ctx).Omit("Employer", "Employees").Create(job).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.JobFiltersKey)
	return nil
}

func (r *jobRepository) CreateBatch(ctx context.Context, jobs []*models.JobDetails) error {
	if len(jobs) == 0 {
		return nil
	}
	for _, job := range jobs {
		if job.Version == 0 {
			job.Version = 1
		}
	}
	if err := r.db.WithContext(ctx).Omit("Employer", "Employees").CreateInBatches(jobs, 100).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.JobFiltersKey)
	return nil
}

// UpdateVersioned writes the editable columns only if the stored version still
// equals expectedVersion, then bumps the version.
func (r *jobRepository) UpdateVersioned(ctx context.Context, job *models.JobDetails, expectedVersion uint) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.JobDetails{}).
		Where("id = ? AND version = ?", job.ID, expectedVersion).
		Updates(map[string]any{
			"title":       job.Title,
			"description": job.Description,
			"company":     job.Company,
			"location":    job.Location,
			"salary":      job.Salary,
			"job_type":    job.JobType,
			"posted_date": job.PostedDate,
			"employer_id": job.EmployerID,
			"version":     gorm.Expr("version + 1"),
			"updated_at":  now,
		})
	cache.InvalidateJob(ctx, job.ID)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStaleVersion
	}
	job.Version = expectedVersion + 1
	job.UpdatedAt = now
	return nil
}

// Delete removes the job and its applicant rows in one transaction.
func (r *jobRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.AppliedJob{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		res := tx.Delete(&models.JobDetails{}, id)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Job", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateJob(ctx, id)
	return nil
}
