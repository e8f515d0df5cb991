// Package db opens the SQLite database the observer records published
// messages in. The schema is migrated from the observer/store models.
package db

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pushchain/svm-bridge/observer/store"
)

const (
	// InMemorySQLiteDSN opens a database that lives as long as its connection.
	InMemorySQLiteDSN = ":memory:"

	// fileDSNParams lets the CLI read the messages table while simulate writes it.
	fileDSNParams = "?_journal_mode=WAL&_busy_timeout=5000"

	dbDirPermissions = 0o750
)

var observerModels = []any{
	&store.ObserverState{},
	&store.PublishedMessage{},
}

// DB is the observer's handle on its message database.
type DB struct {
	client *gorm.DB
}

// OpenFileDB opens filename under dir, creating dir when missing.
func OpenFileDB(dir, filename string, migrateSchema bool) (*DB, error) {
	path, err := observerDBPath(dir, filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare database path")
	}
	return open(path+fileDSNParams, migrateSchema)
}

// OpenInMemoryDB opens a throwaway database, used by tests and simulate --in-memory.
func OpenInMemoryDB(migrateSchema bool) (*DB, error) {
	return open(InMemorySQLiteDSN, migrateSchema)
}

func open(dsn string, migrateSchema bool) (*DB, error) {
	client, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open observer database %s", dsn)
	}

	sqlDB, err := client.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get underlying sql.DB")
	}
	// every query must see the same in-memory database, and writers are serialized anyway
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if migrateSchema {
		if err := client.AutoMigrate(observerModels...); err != nil {
			_ = sqlDB.Close()
			return nil, errors.Wrap(err, "failed to migrate observer schema")
		}
	}
	return &DB{client: client}, nil
}

// Client exposes the GORM handle for queries.
func (d *DB) Client() *gorm.DB {
	return d.client
}

func (d *DB) Close() error {
	sqlDB, err := d.client.DB()
	if err != nil {
		return errors.Wrap(err, "failed to retrieve native sql.DB")
	}
	return errors.Wrap(sqlDB.Close(), "failed to close observer database")
}

// observerDBPath makes sure dir is a usable directory and joins filename to it.
func observerDBPath(dir, filename string) (string, error) {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, dbDirPermissions); err != nil {
			return "", errors.Wrapf(err, "failed to create directory %s", dir)
		}
	case err != nil:
		return "", errors.Wrapf(err, "failed to check directory %s", dir)
	case !info.IsDir():
		return "", errors.Errorf("%s is not a directory", dir)
	}
	return filepath.Join(dir, filename), nil
}
