package repository

import (
	"context"
	"errors"

	"jobboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmployeeRepository defines persistence operations for job seekers and their applications.
type EmployeeRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
	GetByEmailWithApplications(ctx context.Context, email string) (*models.Employee, error)
	GetByAccountID(ctx context.Context, accountID uint) (*models.Employee, error)
	HasApplied(ctx context.Context, employeeID, jobID uint) (bool, error)
	AddApplication(ctx context.Context, employeeID, jobID uint) (bool, error)
	RemoveApplication(ctx context.Context, employeeID, jobID uint) (bool, error)
	Create(ctx context.Context, employee *models.Employee) error
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository returns a gorm-backed EmployeeRepository.
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByEmail returns nil, nil when no employee has the address.
func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	return r.findOne(r.db.WithContext(ctx).Where("LOWER(email) = ?", models.NormalizeEmail(email)))
}

// GetByEmailWithApplications also loads applied jobs ordered by title, each with its employer.
func (r *employeeRepository) GetByEmailWithApplications(ctx context.Context, email string) (*models.Employee, error) {
	q := r.db.WithContext(ctx).
		Preload("AppliedJobs", func(db *gorm.DB) *gorm.DB {
			return db.Order("job_details.title ASC").Order("job_details.id ASC")
		}).
		Preload("AppliedJobs.Employer").
		Where("LOWER(email) = ?", models.NormalizeEmail(email))
	return r.findOne(q)
}

func (r *employeeRepository) GetByAccountID(ctx context.Context, accountID uint) (*models.Employee, error) {
	return r.findOne(r.db.WithContext(ctx).Where("account_id = ?", accountID))
}

func (r *employeeRepository) findOne(q *gorm.DB) (*models.Employee, error) {
	var employee models.Employee
	if err := q.First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &employee, nil
}

func (r *employeeRepository) HasApplied(ctx context.Context, employeeID, jobID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AppliedJob{}).
		Where("employee_id = ? AND job_id = ?", employeeID, jobID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// AddApplication inserts the join row; a repeat application is a no-op and reports false.
func (r *employeeRepository) AddApplication(ctx context.Context, employeeID, jobID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.AppliedJob{EmployeeID: employeeID, JobID: jobID})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// RemoveApplication deletes the join row and reports whether one existed.
func (r *employeeRepository) RemoveApplication(ctx context.Context, employeeID, jobID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("employee_id = ? AND job_id = ?", employeeID, jobID).
		Delete(&models.AppliedJob{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	employee.Email = models.NormalizeEmail(employee.Email)
	if err := r.db.WithContext(ctx).Omit("AppliedJobs").Create(employee).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateAccountError("Email", "Email '"+employee.Email+"' is already taken.")
		}
		return models.NewInternalError(err)
	}
	return nil
}
