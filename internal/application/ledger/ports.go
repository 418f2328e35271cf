package ledger

import (
	"context"
	"io"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios contables.
// periodID identifica el periodo que debe bloquearse mientras dura la transacción.
type TxRunner interface {
	RunLedger(ctx context.Context, periodID string, fn func(
		ledgerRepo repository.LedgerRepository,
		periodRepo repository.FiscalPeriodRepository,
		accountRepo repository.AccountRepository,
	) error) error
}

// JournalExporter serializa los comprobantes de un periodo (libro diario).
type JournalExporter interface {
	ExportJournal(w io.Writer, company *entity.Company, period *entity.FiscalPeriod, accounts []*entity.Account, txs []*entity.LedgerTransaction) error
}
