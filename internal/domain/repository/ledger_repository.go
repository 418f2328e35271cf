package repository

import "github.com/jhoicas/Contable-api/internal/domain/entity"

// LedgerRepository define el puerto de persistencia para comprobantes contables.
// Create persiste la cabecera y todos sus movimientos; debe ejecutarse dentro de una transacción.
type LedgerRepository interface {
	Create(tx *entity.LedgerTransaction) error
	// GetByID devuelve el comprobante con sus movimientos cargados.
	GetByID(id string) (*entity.LedgerTransaction, error)
	// ListByPeriod devuelve los comprobantes del periodo (con movimientos) ordenados por fecha.
	ListByPeriod(periodID string) ([]*entity.LedgerTransaction, error)
	// TrialBalance suma débitos y créditos por cuenta dentro del periodo.
	TrialBalance(periodID string) ([]*entity.AccountBalance, error)
}
