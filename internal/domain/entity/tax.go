package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxKind indica cómo se calcula el valor del impuesto.
type TaxKind string

// Tipos de cálculo soportados.
const (
	TaxKindPercentage    TaxKind = "percentage"      // base × porcentaje
	TaxKindFixedAmount   TaxKind = "fixed_amount"    // valor fijo
	TaxKindAmountPerUnit TaxKind = "amount_per_unit" // valor × cantidad
)

// Valid indica si el tipo de cálculo es conocido.
func (k TaxKind) Valid() bool {
	switch k {
	case TaxKindPercentage, TaxKindFixedAmount, TaxKindAmountPerUnit:
		return true
	}
	return false
}

// TaxLevel nivel de aplicación del impuesto: por línea o sobre el total del documento.
type TaxLevel string

// Niveles de aplicación.
const (
	TaxLevelLine     TaxLevel = "line"
	TaxLevelDocument TaxLevel = "document"
)

// Valid indica si el nivel es conocido.
func (l TaxLevel) Valid() bool {
	return l == TaxLevelLine || l == TaxLevelDocument
}

// Tax representa un impuesto del catálogo (IVA, INC, retenciones, estampillas...).
// Amount se usa en fixed_amount y amount_per_unit; Percentage en percentage (0..100).
type Tax struct {
	ID              string
	CompanyID       string
	Code            string // único por empresa
	Name            string
	Kind            TaxKind
	Level           TaxLevel
	Amount          decimal.Decimal
	Percentage      decimal.Decimal
	Enabled         bool
	IncludedInPrice bool // el precio de la línea ya incluye el impuesto
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
