package repository

import (
	"context"
	"errors"

	"jobboard/internal/models"

	"gorm.io/gorm"
)

// EmployerRepository defines persistence operations for employers.
type EmployerRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Employer, error)
	GetByAccountID(ctx context.Context, accountID uint) (*models.Employer, error)
	List(ctx context.Context) ([]models.Employer, error)
	Create(ctx context.Context, employer *models.Employer) error
}

type employerRepository struct {
	db *gorm.DB
}

// NewEmployerRepository returns a gorm-backed EmployerRepository.
func NewEmployerRepository(db *gorm.DB) EmployerRepository {
	return &employerRepository{db: db}
}

// GetByID returns nil, nil for an unknown id.
func (r *employerRepository) GetByID(ctx context.Context, id uint) (*models.Employer, error) {
	return r.findOne(r.db.WithContext(ctx).Where("id = ?", id))
}

// GetByAccountID returns nil, nil when the account has no employer profile.
func (r *employerRepository) GetByAccountID(ctx context.Context, accountID uint) (*models.Employer, error) {
	return r.findOne(r.db.WithContext(ctx).Where("account_id = ?", accountID))
}

func (r *employerRepository) findOne(q *gorm.DB) (*models.Employer, error) {
	var employer models.Employer
	if err := q.First(&employer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &employer, nil
}

// List returns every employer ordered by company name, for choice lists.
func (r *employerRepository) List(ctx context.Context) ([]models.Employer, error) {
	var employers []models.Employer
	if err := r.db.WithContext(ctx).Order("company_name ASC").Order("id ASC").Find(&employers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return employers, nil
}

func (r *employerRepository) Create(ctx context.Context, employer *models.Employer) error {
	if err := r.db.WithContext(ctx).Omit("Jobs").Create(employer).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateAccountError("CompanyName", "Employer '"+employer.CompanyName+"' already exists.")
		}
		return models.NewInternalError(err)
	}
	return nil
}
