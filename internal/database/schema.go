package database

import (
	"context"
	"fmt"
	"log/slog"

	"jobboard/internal/middleware"
	"jobboard/internal/models"

	"gorm.io/gorm"
)

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.RoleRecord{},
		&models.Account{},
		&models.Employer{},
		&models.Employee{},
		&models.Admin{},
		&models.JobDetails{},
		&models.AppliedJob{},
	}
}

// SetupJoinTables registers AppliedJob as the custom join model for both sides
// of the employee/job relation so AppliedAt is kept.
func SetupJoinTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Employee{}, "AppliedJobs", &models.AppliedJob{}); err != nil {
		return fmt.Errorf("setup employee applied jobs join table: %w", err)
	}
	if err := db.SetupJoinTable(&models.JobDetails{}, "Employees", &models.AppliedJob{}); err != nil {
		return fmt.Errorf("setup job applicants join table: %w", err)
	}
	return nil
}

// ApplySchema migrates every persistent model. It is safe to run on every start.
func ApplySchema(ctx context.Context, db *gorm.DB) error {
	middleware.Logger.InfoContext(ctx, "Running GORM AutoMigrate", slog.String("driver", db.Dialector.Name()))
	if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
