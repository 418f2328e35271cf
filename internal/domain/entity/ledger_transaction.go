package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerTransaction representa un comprobante contable (cabecera).
// DocumentID referencia opcionalmente el documento comercial que lo originó.
type LedgerTransaction struct {
	ID          string
	CompanyID   string
	PeriodID    string
	Date        time.Time
	Reference   string
	Description string
	DocumentID  string
	Entries     []*LedgerEntry
	CreatedAt   time.Time
}

// LedgerEntry representa un movimiento débito o crédito del comprobante.
// LineNumber conserva el orden de registro (1..n) al releer el comprobante.
type LedgerEntry struct {
	ID            string
	TransactionID string
	LineNumber    int
	AccountID     string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Memo          string
}

// Totals devuelve la suma de débitos y créditos del comprobante.
func (t *LedgerTransaction) Totals() (debit, credit decimal.Decimal) {
	for _, e := range t.Entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	return debit, credit
}

// AccountBalance totales por cuenta en un periodo (balance de prueba).
type AccountBalance struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}
