package entity

import "time"

// TaxRule condiciona la aplicación de un impuesto.
// Los filtros vacíos significan "cualquiera". Priority menor se evalúa primero.
type TaxRule struct {
	ID                    string
	CompanyID             string
	TaxID                 string
	OperationCode         string // ej. "Invoice", "CreditNote"; vacío = cualquier operación
	BusinessEntityGroupID string // vacío = cualquier tercero
	ItemGroupID           string // vacío = cualquier ítem
	Priority              int
	Enabled               bool // decisión de la regla: aplicar (true) o excluir (false)
	Description           string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// HasItemGroup indica si la regla filtra por grupo de ítems (regla más específica).
func (r *TaxRule) HasItemGroup() bool {
	return r.ItemGroupID != ""
}
