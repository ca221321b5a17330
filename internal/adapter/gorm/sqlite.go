package gorm

import (
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// OpenSQLite opens a SQLite database with a single connection, write-ahead
// logging and foreign keys enabled.
func OpenSQLite(dsn string, config *gorm.Config) (*gorm.DB, error) {
	if config == nil {
		config = &gorm.Config{}
	}

	db, err := gorm.Open(gormlite.Open(dsn), config)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	internalDB, err := db.DB()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	internalDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA journal_mode=wal; PRAGMA foreign_keys=on; PRAGMA busy_timeout=5000").Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return db, nil
}
