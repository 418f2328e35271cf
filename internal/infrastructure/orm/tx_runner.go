package orm

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/application/taxation"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ taxation.DocumentTxRunner = (*TxRunner)(nil)
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción gorm.
type TxRunner struct {
	db *gorm.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

// RunDocument persiste cabecera y líneas de un documento en una sola transacción.
func (r *TxRunner) RunDocument(ctx context.Context, fn func(docRepo repository.DocumentRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewDocumentRepository(tx))
	})
}

// RunLedger registra un comprobante con repos atados a la tx. En postgres el periodo
// se bloquea con FOR UPDATE; sqlite serializa las escrituras por sí mismo.
func (r *TxRunner) RunLedger(ctx context.Context, periodID string, fn func(
	ledgerRepo repository.LedgerRepository,
	periodRepo repository.FiscalPeriodRepository,
	accountRepo repository.AccountRepository,
) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if periodID != "" && tx.Dialector.Name() == "postgres" {
			var locked fiscalPeriodModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", periodID).Limit(1).Find(&locked).Error; err != nil {
				return err
			}
		}
		return fn(NewLedgerRepository(tx), NewFiscalPeriodRepository(tx), NewAccountRepository(tx))
	})
}
