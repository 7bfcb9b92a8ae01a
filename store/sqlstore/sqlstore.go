// Package sqlstore implements store.Store on gorm with the pure-Go SQLite
// driver. It is the default backend and the one tests run against.
package sqlstore

import (
	"context"
	"errors"
	"strings"

	"restaurant-admin/models"
	"restaurant-admin/store"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the SQLite database at dsn, turns on foreign keys and
// migrates every collection.
func Open(dsn string) (*store.Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// openDB leaves driver errors untranslated: gorm's ErrDuplicatedKey drops the
// column name that tells an email clash from a phone clash.
func openDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(withForeignKeys(dsn)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if strings.Contains(dsn, "mode=memory") {
		// Each extra connection to a private in-memory database would see an
		// empty schema, and shared-cache ones contend on table locks.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Order{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// New wraps an already migrated connection.
func New(db *gorm.DB) *store.Store {
	closer := func(context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return store.New(&userStore{db: db}, &restaurantStore{db: db}, &orderStore{db: db}, closer)
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func exists(db *gorm.DB, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// translate maps driver and gorm errors onto the store sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return store.ErrInvalidReference
	case strings.Contains(msg, "UNIQUE constraint failed"):
		if strings.Contains(msg, "users.phone") {
			return store.ErrDuplicatePhone
		}
		return store.ErrDuplicateEmail
	}
	return err
}
