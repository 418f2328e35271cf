// Package ledger contiene las reglas de partida doble de los comprobantes contables.
package ledger

import (
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// ValidateBalanced verifica que el comprobante cumpla partida doble:
// al menos dos movimientos, cada uno con débito o crédito (no ambos), sin valores negativos,
// y suma de débitos igual a suma de créditos.
func ValidateBalanced(entries []*entity.LedgerEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("%w: el comprobante requiere al menos dos movimientos", domain.ErrInvalidInput)
	}
	tx := entity.LedgerTransaction{Entries: entries}
	for i, e := range entries {
		if e == nil {
			return fmt.Errorf("%w: movimiento %d vacío", domain.ErrInvalidInput, i+1)
		}
		if e.AccountID == "" {
			return fmt.Errorf("%w: movimiento %d sin cuenta", domain.ErrInvalidInput, i+1)
		}
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("%w: movimiento %d con valor negativo", domain.ErrInvalidInput, i+1)
		}
		if e.Debit.IsPositive() == e.Credit.IsPositive() {
			return fmt.Errorf("%w: movimiento %d debe tener débito o crédito", domain.ErrInvalidInput, i+1)
		}
	}
	debit, credit := tx.Totals()
	if !debit.Equal(credit) {
		return fmt.Errorf("%w: débitos %s, créditos %s", domain.ErrUnbalancedEntry, debit.StringFixed(2), credit.StringFixed(2))
	}
	return nil
}
