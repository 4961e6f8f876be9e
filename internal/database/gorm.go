package database

import (
	"context"
	"errors"
	"fmt"
	"homefinder/internal/apperrors"
	"homefinder/internal/config"
	"homefinder/internal/models"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormDB is the relational store for listings and everything attached to them.
type GormDB struct {
	db         *gorm.DB
	strictRefs bool
}

// Options tune a GormDB
type Options struct {
	// StrictReferences rejects writes whose foreign keys point at missing rows.
	StrictReferences bool
	LogSQL           bool
}

// Dialector builds the gorm dialector for the configured database type.
// Config values win over environment variables, which win over defaults.
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	dbType := config.GetEnvOrConfig(cfg.Type, "DB_TYPE", "mysql")

	switch dbType {
	case "mysql":
		c := cfg.MySQL
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			config.GetEnvOrConfig(c.User, "DB_USER", "homefinder"),
			config.GetEnvOrConfig(c.Password, "DB_PASSWORD", "homefinder"),
			config.GetEnvOrConfig(c.Host, "DB_HOST", "mysql"),
			config.GetEnvOrConfig(portString(c.Port), "DB_PORT", "3306"),
			config.GetEnvOrConfig(c.Database, "DB_NAME", "homefinder"),
		)
		return mysql.Open(dsn), nil

	case "postgres":
		c := cfg.Postgres
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			config.GetEnvOrConfig(c.Host, "DB_HOST", "db"),
			config.GetEnvOrConfig(portString(c.Port), "DB_PORT", "5432"),
			config.GetEnvOrConfig(c.User, "DB_USER", "homefinder"),
			config.GetEnvOrConfig(c.Password, "DB_PASSWORD", "homefinder"),
			config.GetEnvOrConfig(c.Database, "DB_NAME", "homefinder"),
			config.GetEnvOrConfig(c.SSLMode, "DB_SSLMODE", "disable"),
		)
		// lib/pq is registered as "postgres"; its *pq.Error codes drive conflict detection.
		return postgres.New(postgres.Config{DriverName: "postgres", DSN: dsn}), nil

	case "sqlite":
		return sqlite.Open(config.GetEnvOrConfig(cfg.SQLite.Path, "SQLITE_PATH", "homefinder.db")), nil
	}

	return nil, fmt.Errorf("unsupported database type %q", dbType)
}

func portString(port int) string {
	if port > 0 {
		return fmt.Sprintf("%d", port)
	}
	return ""
}

// NewGormDB opens the store and verifies the connection
func NewGormDB(dialector gorm.Dialector, opts Options) (*GormDB, error) {
	logLevel := logger.Silent
	if opts.LogSQL {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		// References are checked by policy, and cascades run inside the delete transaction.
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return NewGormDBFromDB(db, opts), nil
}

// NewGormDBFromDB creates a GormDB wrapper from an existing gorm.DB instance
func NewGormDBFromDB(db *gorm.DB, opts Options) *GormDB {
	return &GormDB{db: db, strictRefs: opts.StrictReferences}
}

// DB returns the underlying gorm.DB instance
func (gdb *GormDB) DB() *gorm.DB {
	return gdb.db
}

func (gdb *GormDB) Close() error {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema creates tables using GORM AutoMigrate
func (gdb *GormDB) InitSchema() error {
	return gdb.db.AutoMigrate(
		&models.User{},
		&models.PropertyType{},
		&models.Property{},
		&models.PropertyImage{},
		&models.Favorite{},
		&models.ContactRequest{},
	)
}

// transaction runs fn in one transaction. Classified errors pass through;
// anything else rolls back and surfaces as Internal.
func (gdb *GormDB) transaction(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	err := gdb.db.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Internal(op, err)
}
