package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"jobboard/internal/cache"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/identity"
	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/repository"
	"jobboard/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedSampleJobs bool
}

// InitRuntime connects to the database and Redis, migrates the schema and runs the startup seeding.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Redis is optional; a nil client disables cache, revocation, rate limits and events.
	r := cache.InitRedis(cfg.RedisURL)

	if err := Prepare(ctx, cfg, db, opts); err != nil {
		return nil, nil, err
	}
	return db, r, nil
}

// Prepare migrates the schema, creates roles, inserts sample jobs and the configured admin.
func Prepare(ctx context.Context, cfg *config.Config, db *gorm.DB, opts Options) error {
	if err := database.ApplySchema(ctx, db); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	if err := seed.EnsureRoles(ctx, db); err != nil {
		return fmt.Errorf("failed to create roles: %w", err)
	}
	if opts.SeedSampleJobs {
		if _, err := seed.EnsurePopulated(ctx, db); err != nil {
			return fmt.Errorf("failed to seed sample jobs: %w", err)
		}
	}
	if err := ensureAdmin(ctx, cfg, db); err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}
	return nil
}

// ensureAdmin makes ADMIN_EMAIL an Admin and Employer account with an Admin profile.
// An existing account keeps its password.
func ensureAdmin(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	email := models.NormalizeEmail(cfg.AdminEmail)
	if email == "" {
		return nil
	}
	if cfg.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD must be set when ADMIN_EMAIL is set")
	}

	var accountID uint
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accounts := repository.NewAccountRepository(tx)
		account, err := accounts.GetByEmail(ctx, email)
		if err != nil {
			return err
		}

		if account == nil {
			hash, err := identity.HashPassword(cfg.AdminPassword, 0)
			if err != nil {
				return err
			}
			roles, err := accounts.FindRoles(ctx, models.RoleAdmin, models.RoleEmployer)
			if err != nil {
				return err
			}
			account = &models.Account{UserName: email, Email: email, PasswordHash: hash, Roles: roles}
			if err := accounts.Create(ctx, account); err != nil {
				return err
			}
		} else if err := accounts.AddRoles(ctx, account.ID, models.RoleAdmin, models.RoleEmployer); err != nil {
			return err
		}

		accountID = account.ID

		admins := repository.NewAdminRepository(tx)
		existing, err := admins.GetByContactEmail(ctx, email)
		if err != nil || existing != nil {
			return err
		}
		local, _, _ := strings.Cut(email, "@")
		return admins.Create(ctx, &models.Admin{
			FirstName:    "Site",
			LastName:     local,
			ContactEmail: email,
			AccountID:    &account.ID,
		})
	})
	if err != nil {
		return err
	}

	cache.InvalidatePrincipal(ctx, accountID)
	middleware.Logger.InfoContext(ctx, "admin account ensured", "email", email)
	return nil
}
