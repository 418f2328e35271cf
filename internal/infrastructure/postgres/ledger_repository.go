package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository (usable con pool o tx).
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerTransactionSelect = `
	SELECT id, company_id, period_id, date, reference, description,
	       COALESCE(document_id::text, ''), created_at
	FROM ledger_transactions`

// Create persiste la cabecera y los movimientos del comprobante.
func (r *LedgerRepo) Create(tx *entity.LedgerTransaction) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO ledger_transactions (id, company_id, period_id, date, reference, description, document_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tx.ID, tx.CompanyID, tx.PeriodID, tx.Date, tx.Reference, tx.Description,
		nullIfEmpty(tx.DocumentID), tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger transaction: %w", err)
	}
	for _, e := range tx.Entries {
		_, err := r.q.Exec(ctx, `
			INSERT INTO ledger_entries (id, transaction_id, line_number, account_id, debit, credit, memo)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			e.ID, tx.ID, e.LineNumber, e.AccountID, e.Debit, e.Credit, e.Memo,
		)
		if err != nil {
			return fmt.Errorf("insert ledger entry: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un comprobante con sus movimientos.
func (r *LedgerRepo) GetByID(id string) (*entity.LedgerTransaction, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var t entity.LedgerTransaction
	err := r.q.QueryRow(context.Background(), ledgerTransactionSelect+` WHERE id = $1`, id).Scan(
		&t.ID, &t.CompanyID, &t.PeriodID, &t.Date, &t.Reference, &t.Description, &t.DocumentID, &t.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger transaction: %w", err)
	}
	if err := r.loadEntries([]*entity.LedgerTransaction{&t}); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByPeriod devuelve los comprobantes del periodo ordenados por fecha.
func (r *LedgerRepo) ListByPeriod(periodID string) ([]*entity.LedgerTransaction, error) {
	rows, err := r.q.Query(context.Background(),
		ledgerTransactionSelect+` WHERE period_id = $1 ORDER BY date, created_at, id`, periodID)
	if err != nil {
		return nil, fmt.Errorf("list ledger transactions: %w", err)
	}
	var list []*entity.LedgerTransaction
	for rows.Next() {
		var t entity.LedgerTransaction
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.PeriodID, &t.Date, &t.Reference, &t.Description, &t.DocumentID, &t.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan ledger transaction: %w", err)
		}
		list = append(list, &t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ledger transactions: %w", err)
	}
	if err := r.loadEntries(list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadEntries carga en una sola consulta los movimientos de los comprobantes dados.
func (r *LedgerRepo) loadEntries(txs []*entity.LedgerTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	byID := make(map[string]*entity.LedgerTransaction, len(txs))
	ids := make([]string, 0, len(txs))
	for _, t := range txs {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}
	rows, err := r.q.Query(context.Background(), `
		SELECT id, transaction_id, line_number, account_id, debit, credit, memo
		FROM ledger_entries WHERE transaction_id::text = ANY($1)
		ORDER BY transaction_id, line_number`, ids)
	if err != nil {
		return fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.TransactionID, &e.LineNumber, &e.AccountID, &e.Debit, &e.Credit, &e.Memo); err != nil {
			return fmt.Errorf("scan ledger entry: %w", err)
		}
		if t := byID[e.TransactionID]; t != nil {
			t.Entries = append(t.Entries, &e)
		}
	}
	return rows.Err()
}

// TrialBalance suma débitos y créditos por cuenta dentro del periodo.
func (r *LedgerRepo) TrialBalance(periodID string) ([]*entity.AccountBalance, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT e.account_id, COALESCE(SUM(e.debit), 0), COALESCE(SUM(e.credit), 0)
		FROM ledger_entries e
		JOIN ledger_transactions t ON t.id = e.transaction_id
		JOIN accounts a ON a.id = e.account_id
		WHERE t.period_id = $1
		GROUP BY e.account_id, a.code
		ORDER BY a.code`, periodID)
	if err != nil {
		return nil, fmt.Errorf("trial balance: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountBalance
	for rows.Next() {
		var b entity.AccountBalance
		if err := rows.Scan(&b.AccountID, &b.Debit, &b.Credit); err != nil {
			return nil, fmt.Errorf("scan trial balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
