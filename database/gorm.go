package database

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/holocron-api/logging"
	"github.com/holocron-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DBConnection represents a database connection
type DBConnection struct {
	DB     *gorm.DB
	Name   string
	Driver string
	Models []interface{}

	logger *slog.Logger
}

// Models returns every model managed by migrations, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.Role{},
		&models.User{},
		&models.Character{},
		&models.Planet{},
		&models.Vehicle{},
		&models.Favorite{},
	}
}

// NewDBConnection creates a new database connection
func NewDBConnection(name, driver, dbURL string, logger *slog.Logger, logLevel gormlogger.LogLevel) (*DBConnection, error) {
	if dbURL == "" {
		return nil, errors.New("database URL cannot be empty")
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dbURL)
	case DriverSQLite:
		dialector = sqlite.Open(withForeignKeys(dbURL))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logging.GormLogger(logger, logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", name, err)
	}

	// Get and configure the underlying SQL DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB for %s: %w", name, err)
	}

	if driver == DriverSQLite {
		// One writer at a time; also keeps in-memory databases alive on a single connection.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	conn := &DBConnection{
		DB:     db,
		Name:   name,
		Driver: driver,
		Models: Models(),
		logger: logger,
	}

	if version, err := conn.Version(); err == nil {
		logger.Info("connected to database", "name", name, "driver", driver, "version", version)
	}

	return conn, nil
}

// Version reports the server version string.
func (c *DBConnection) Version() (string, error) {
	query := "SELECT version()"
	if c.Driver == DriverSQLite {
		query = "SELECT sqlite_version()"
	}
	var version string
	err := c.DB.Raw(query).Scan(&version).Error
	return version, err
}

// Close releases the underlying pool.
func (c *DBConnection) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withForeignKeys turns on SQLite foreign key enforcement, which is off by default.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}
