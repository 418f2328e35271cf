package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Códigos de operación usados por los documentos y las reglas de impuestos.
const (
	OperationInvoice    = "Invoice"
	OperationCreditNote = "CreditNote"
	OperationPurchase   = "Purchase"
)

// Document representa la cabecera de un documento comercial (factura, nota, compra).
// BusinessEntityID vacío significa documento sin tercero asociado.
type Document struct {
	ID               string
	CompanyID        string
	OperationCode    string
	BusinessEntityID string
	Number           string
	Date             time.Time
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DocumentLine representa una línea del documento. ItemID vacío = línea libre sin ítem.
type DocumentLine struct {
	ID          string
	DocumentID  string
	LineNumber  int
	ItemID      string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Subtotal devuelve cantidad × precio unitario.
func (l *DocumentLine) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}
