package database

import (
	"github.com/b2ygroup/conecta-pro/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens a GORM DB from a Postgres DSN.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") behind connection poolers.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
}

// Models is every table the API owns, in migration order.
func Models() []interface{} {
	return []interface{}{
		&domain.UserAccount{},
		&domain.UserProfile{},
		&domain.Listing{},
		&domain.ListingEvent{},
		&domain.SavedListing{},
		&domain.Conversation{},
		&domain.Message{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
