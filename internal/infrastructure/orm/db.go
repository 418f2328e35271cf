// Package orm implementa los puertos de persistencia sobre gorm (postgres o sqlite).
package orm

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/Contable-api/pkg/config"
)

// Dialect devuelve el dialector gorm según ORM_DIALECT.
func Dialect(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.Persistence.Dialect {
	case "postgres":
		return postgres.Open(cfg.DB.ConnectionString()), nil
	case "sqlite":
		return sqlite.Open(cfg.Persistence.SQLitePath), nil
	default:
		return nil, fmt.Errorf("orm: dialecto no soportado %q", cfg.Persistence.Dialect)
	}
}

// Open abre la conexión gorm y, si DB_AUTO_MIGRATE está activo, aplica el esquema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}
	logLevel := gormlogger.Warn
	if cfg.App.LogLevel == "debug" || cfg.App.LogLevel == "trace" {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, fmt.Errorf("orm: abrir %s: %w", cfg.Persistence.Dialect, err)
	}
	if cfg.DB.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// AutoMigrate crea o actualiza las tablas de todos los modelos.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&companyModel{},
		&taxModel{},
		&taxRuleModel{},
		&groupModel{},
		&groupMembershipModel{},
		&businessEntityModel{},
		&itemModel{},
		&documentModel{},
		&documentLineModel{},
		&accountModel{},
		&fiscalPeriodModel{},
		&ledgerTransactionModel{},
		&ledgerEntryModel{},
	)
	if err != nil {
		return fmt.Errorf("orm: auto migrate: %w", err)
	}
	return nil
}
