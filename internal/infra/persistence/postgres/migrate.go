package postgres

import (
	"context"

	"pawparadise/internal/errors"
	"pawparadise/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}
