package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parceltrack/contexts/identity-access/access-service/domain/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const bootstrapRowID = "initial_admin"

// Repository adapter for PostgreSQL. The bootstrap consume is a conditional
// update on a singleton row; rows-affected tells exactly one caller it won.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// AutoMigrate creates the identity tables and seeds the bootstrap row.
func (r *Repository) AutoMigrate() error {
	if err := r.db.AutoMigrate(
		&userRoleModel{},
		&userProfileModel{},
		&bootstrapStateModel{},
	); err != nil {
		return err
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&bootstrapStateModel{StateID: bootstrapRowID}).
		Error
}

func (r *Repository) GetRole(ctx context.Context, identity string) (entities.Role, bool, error) {
	var row userRoleModel
	err := r.db.WithContext(ctx).
		Where("identity = ?", identity).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.RoleGuest, false, nil
		}
		return entities.RoleGuest, false, err
	}
	return entities.Role(row.Role), true, nil
}

func (r *Repository) SaveRole(ctx context.Context, identity string, role entities.Role) error {
	row := userRoleModel{
		Identity:  identity,
		Role:      string(role),
		UpdatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).
		Create(&row).
		Error
}

func (r *Repository) GetProfile(ctx context.Context, identity string) (entities.Profile, bool, error) {
	var row userProfileModel
	err := r.db.WithContext(ctx).
		Where("identity = ?", identity).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Profile{}, false, nil
		}
		return entities.Profile{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) SaveProfile(ctx context.Context, identity string, profile entities.Profile) error {
	row := userProfileModelFromEntity(identity, profile)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "phone", "updated_at"}),
		}).
		Create(&row).
		Error
}

func (r *Repository) BootstrapConsumed(ctx context.Context) (bool, error) {
	var row bootstrapStateModel
	err := r.db.WithContext(ctx).
		Where("state_id = ?", bootstrapRowID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return row.Consumed, nil
}

func (r *Repository) ConsumeBootstrap(ctx context.Context, identity string, now time.Time) (bool, error) {
	var consumed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&bootstrapStateModel{}).
			Where("state_id = ? AND consumed = ?", bootstrapRowID, false).
			Updates(map[string]any{
				"consumed":    true,
				"granted_to":  identity,
				"consumed_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		consumed = true
		row := userRoleModel{
			Identity:  identity,
			Role:      string(entities.RoleAdmin),
			UpdatedAt: now,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).Create(&row).Error
	})
	if err != nil {
		return false, err
	}
	return consumed, nil
}
