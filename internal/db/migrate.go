package db

import (
	"videocatalog/internal/models"
)

// AutoMigrate creates the catalog tables when they are missing. Production
// schemas are owned by the ingestion pipeline, so this only runs when
// db.auto_migrate is set or in tests.
func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Card{},
		&models.CardDetail{},
	)
}
