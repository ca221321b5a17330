package setup

import (
	"context"
	"log/slog"

	gormAdapter "github.com/bornholm/scheduler/internal/adapter/gorm"
	"github.com/bornholm/scheduler/internal/config"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var getGormDatabaseFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	switch slog.Level(conf.Logger.Level) {
	case slog.LevelError:
		logLevel = logger.Error
	case slog.LevelWarn:
		logLevel = logger.Warn
	case slog.LevelInfo:
		logLevel = logger.Info
	default:
		logLevel = logger.Error
	}

	db, err := gormAdapter.OpenSQLite(conf.Storage.Database.DSN, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not open database '%s'", conf.Storage.Database.DSN)
	}

	if slog.Level(conf.Logger.Level) == slog.LevelDebug {
		db = db.Debug()
	}

	return db, nil
})
