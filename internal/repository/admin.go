package repository

import (
	"context"
	"errors"

	"jobboard/internal/models"

	"gorm.io/gorm"
)

// AdminRepository stores admin profiles.
type AdminRepository interface {
	GetByContactEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// GetByContactEmail returns nil, nil when no admin has the address.
func (r *adminRepository) GetByContactEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("LOWER(contact_email) = ?", models.NormalizeEmail(email)).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &admin, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	admin.ContactEmail = models.NormalizeEmail(admin.ContactEmail)
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateAccountError("ContactEmail", "Admin '"+admin.ContactEmail+"' already exists.")
		}
		return models.NewInternalError(err)
	}
	return nil
}
