package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/application/taxation"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// Ensure TxRunner implements taxation.DocumentTxRunner and ledger.TxRunner.
var _ taxation.DocumentTxRunner = (*TxRunner)(nil)
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDocument persiste cabecera y líneas de un documento en una sola transacción.
func (r *TxRunner) RunDocument(ctx context.Context, fn func(docRepo repository.DocumentRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewDocumentRepository(tx))
	})
}

// RunLedger registra un comprobante con repos atados a la tx. El periodo se bloquea
// (FOR UPDATE) para que un cierre concurrente no deje pasar el registro.
func (r *TxRunner) RunLedger(ctx context.Context, periodID string, fn func(
	ledgerRepo repository.LedgerRepository,
	periodRepo repository.FiscalPeriodRepository,
	accountRepo repository.AccountRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if periodID != "" {
			if _, err := tx.Exec(ctx, `SELECT 1 FROM fiscal_periods WHERE id = $1 FOR UPDATE`, periodID); err != nil {
				return fmt.Errorf("lock fiscal period: %w", err)
			}
		}
		return fn(NewLedgerRepository(tx), NewFiscalPeriodRepository(tx), NewAccountRepository(tx))
	})
}
