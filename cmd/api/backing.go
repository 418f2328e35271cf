package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/application/taxation"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/internal/infrastructure/orm"
	"github.com/jhoicas/Contable-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Contable-api/pkg/config"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// txRunner lo implementan postgres.TxRunner y orm.TxRunner.
type txRunner interface {
	taxation.DocumentTxRunner
	ledger.TxRunner
}

// backing agrupa los puertos de persistencia del backend elegido en PERSISTENCE.
type backing struct {
	companies repository.CompanyRepository
	taxes     repository.TaxRepository
	rules     repository.TaxRuleRepository
	groups    repository.GroupRepository
	entities  repository.BusinessEntityRepository
	items     repository.ItemRepository
	documents repository.DocumentRepository
	accounts  repository.AccountRepository
	periods   repository.FiscalPeriodRepository
	ledger    repository.LedgerRepository
	tx        txRunner
	ping      func() error
	close     func()
}

func openBacking(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backing, error) {
	switch cfg.Persistence.Backend {
	case config.PersistenceLegacy:
		return openLegacy(ctx, cfg, log)
	case config.PersistenceORM:
		return openORM(cfg, log)
	default:
		return nil, fmt.Errorf("backend de persistencia no soportado: %q", cfg.Persistence.Backend)
	}
}

func openLegacy(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backing, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema SQL aplicado")
	}
	log.Info().Str("backend", "legacy").Msg("persistencia lista")
	return &backing{
		companies: postgres.NewCompanyRepository(pool),
		taxes:     postgres.NewTaxRepository(pool),
		rules:     postgres.NewTaxRuleRepository(pool),
		groups:    postgres.NewGroupRepository(pool),
		entities:  postgres.NewBusinessEntityRepository(pool),
		items:     postgres.NewItemRepository(pool),
		documents: postgres.NewDocumentRepository(pool),
		accounts:  postgres.NewAccountRepository(pool),
		periods:   postgres.NewFiscalPeriodRepository(pool),
		ledger:    postgres.NewLedgerRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		ping:      func() error { return pool.Ping(context.Background()) },
		close:     pool.Close,
	}, nil
}

func openORM(cfg *config.Config, log *logger.Logger) (*backing, error) {
	db, err := orm.Open(cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("orm: obtener sql.DB: %w", err)
	}
	log.Info().Str("backend", "orm").Str("dialect", cfg.Persistence.Dialect).Msg("persistencia lista")
	return &backing{
		companies: orm.NewCompanyRepository(db),
		taxes:     orm.NewTaxRepository(db),
		rules:     orm.NewTaxRuleRepository(db),
		groups:    orm.NewGroupRepository(db),
		entities:  orm.NewBusinessEntityRepository(db),
		items:     orm.NewItemRepository(db),
		documents: orm.NewDocumentRepository(db),
		accounts:  orm.NewAccountRepository(db),
		periods:   orm.NewFiscalPeriodRepository(db),
		ledger:    orm.NewLedgerRepository(db),
		tx:        orm.NewTxRunner(db),
		ping:      sqlDB.Ping,
		close:     func() { _ = sqlDB.Close() },
	}, nil
}
