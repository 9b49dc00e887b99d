package repository

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountRepository persists sign-in accounts and their roles.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByUserName(ctx context.Context, userName string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	RecordFailedAccess(ctx context.Context, id uint, failedCount int, lockoutEnd *time.Time) error
	ResetAccessFailed(ctx context.Context, id uint) error
	EnsureRoles(ctx context.Context, roles ...models.Role) error
	FindRoles(ctx context.Context, roles ...models.Role) ([]models.RoleRecord, error)
	AddRoles(ctx context.Context, accountID uint, roles ...models.Role) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository returns a gorm-backed AccountRepository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts the account together with its already-persisted role rows.
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	account.Email = models.NormalizeEmail(account.Email)
	account.NormalizedUserName = models.NormalizeUserName(account.UserName)
	if err := r.db.WithContext(ctx).Omit("Roles.*").Create(account).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateAccountError("UserName", "Username '"+account.UserName+"' is already taken.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Preload("Roles").First(&account, id).Error; err != nil {
		return nil, notFoundOr(err, "Account", id)
	}
	return &account, nil
}

// GetByUserName returns nil, nil when no account has the user name.
func (r *accountRepository) GetByUserName(ctx context.Context, userName string) (*models.Account, error) {
	return r.findOne(r.db.WithContext(ctx).Where("normalized_user_name = ?", models.NormalizeUserName(userName)))
}

// GetByEmail returns nil, nil when no account has the address.
func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.findOne(r.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)))
}

func (r *accountRepository) findOne(q *gorm.DB) (*models.Account, error) {
	var account models.Account
	if err := q.Preload("Roles").First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &account, nil
}

func (r *accountRepository) RecordFailedAccess(ctx context.Context, id uint, failedCount int, lockoutEnd *time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).
		Updates(map[string]any{
			"access_failed_count": failedCount,
			"lockout_end":         lockoutEnd,
		}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *accountRepository) ResetAccessFailed(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).
		Updates(map[string]any{
			"access_failed_count": 0,
			"lockout_end":         nil,
		}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// EnsureRoles creates any missing role rows.
func (r *accountRepository) EnsureRoles(ctx context.Context, roles ...models.Role) error {
	if len(roles) == 0 {
		return nil
	}
	records := make([]models.RoleRecord, 0, len(roles))
	for _, role := range roles {
		records = append(records, models.RoleRecord{Name: role})
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&records).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// FindRoles loads the role rows for roles; a missing role is an internal error.
func (r *accountRepository) FindRoles(ctx context.Context, roles ...models.Role) ([]models.RoleRecord, error) {
	var records []models.RoleRecord
	if len(roles) == 0 {
		return records, nil
	}
	if err := r.db.WithContext(ctx).Where("name IN ?", roles).Order("name ASC").Find(&records).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(records) != len(roles) {
		return nil, models.NewInternalError(errors.New("roles are not seeded"))
	}
	return records, nil
}

// AddRoles grants roles to an existing account. Already-held roles are ignored.
func (r *accountRepository) AddRoles(ctx context.Context, accountID uint, roles ...models.Role) error {
	records, err := r.FindRoles(ctx, roles...)
	if err != nil {
		return err
	}
	account := models.Account{ID: accountID}
	if err := r.db.WithContext(ctx).Model(&account).Association("Roles").Append(records); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
