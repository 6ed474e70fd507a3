package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options selects the backing store. SQLitePath is used when Driver is
// "sqlite"; DSN when it is "postgres".
type Options struct {
	Driver     string
	DSN        string
	SQLitePath string
	LogLevel   logger.LogLevel
}

func Connect(opts Options) (*gorm.DB, error) {
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(opts.LogLevel),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch opts.Driver {
	case DriverPostgres:
		if opts.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
		dialector = postgres.Open(opts.DSN)
	case DriverSQLite, "":
		path := opts.SQLitePath
		if path == "" {
			path = "mentoria.db"
		}
		dialector = sqlite.Open(SQLiteDSN(path))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if opts.Driver == DriverPostgres {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		// sqlite serializes writers; a single connection keeps
		// transactions and foreign-key pragmas on the same handle.
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// SQLiteDSN enables foreign keys so ON DELETE CASCADE / SET NULL apply.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
}

// PostgresDSN builds a DSN from discrete connection settings.
func PostgresDSN(host, user, password, name, port string) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, name, port,
	)
}
