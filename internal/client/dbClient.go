package client

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/model"
)

// InitCatalogDB opens the SQLite database holding the fixed product
// catalog and the webhook audit trail, migrating the schema as needed.
func InitCatalogDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open catalog db %s: %w", path, err)
	}

	if err := db.AutoMigrate(
		&model.Product{},
		&model.WebhookEvent{},
	); err != nil {
		return nil, fmt.Errorf("migrate catalog db: %w", err)
	}

	return db, nil
}
