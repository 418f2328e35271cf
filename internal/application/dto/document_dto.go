package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDocumentRequest entrada para registrar un documento comercial.
type CreateDocumentRequest struct {
	OperationCode    string                      `json:"operation_code" validate:"required"`
	BusinessEntityID string                      `json:"business_entity_id"`
	Number           string                      `json:"number"`
	Date             time.Time                   `json:"date"` // zero = hoy
	Notes            string                      `json:"notes"`
	Lines            []CreateDocumentLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CreateDocumentLineRequest línea del documento. UnitPrice cero toma el precio del ítem.
type CreateDocumentLineRequest struct {
	ItemID      string          `json:"item_id" validate:"required"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// DocumentLineResponse salida de una línea.
type DocumentLineResponse struct {
	ID          string          `json:"id"`
	LineNumber  int             `json:"line_number"`
	ItemID      string          `json:"item_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// DocumentResponse salida de un documento con sus líneas.
type DocumentResponse struct {
	ID               string                 `json:"id"`
	CompanyID        string                 `json:"company_id"`
	OperationCode    string                 `json:"operation_code"`
	BusinessEntityID string                 `json:"business_entity_id"`
	Number           string                 `json:"number"`
	Date             time.Time              `json:"date"`
	Notes            string                 `json:"notes"`
	Lines            []DocumentLineResponse `json:"lines"`
	CreatedAt        time.Time              `json:"created_at"`
}

// DocumentListResponse lista paginada de documentos (sin líneas).
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// AppliedTaxDTO impuesto aplicado con su base y valor calculado.
type AppliedTaxDTO struct {
	TaxID           string          `json:"tax_id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Kind            string          `json:"kind"`
	Level           string          `json:"level"`
	Rate            decimal.Decimal `json:"rate"` // porcentaje o valor según Kind
	Base            decimal.Decimal `json:"base"`
	Amount          decimal.Decimal `json:"amount"`
	IncludedInPrice bool            `json:"included_in_price"`
}

// LineTaxesDTO impuestos de una línea.
type LineTaxesDTO struct {
	LineID     string          `json:"line_id"`
	LineNumber int             `json:"line_number"`
	ItemID     string          `json:"item_id"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Taxes      []AppliedTaxDTO `json:"taxes"`
}

// DocumentTaxesResponse desglose de impuestos de un documento.
// GrandTotal = NetTotal + impuestos no incluidos en el precio.
type DocumentTaxesResponse struct {
	DocumentID    string          `json:"document_id"`
	OperationCode string          `json:"operation_code"`
	Lines         []LineTaxesDTO  `json:"lines"`
	DocumentTaxes []AppliedTaxDTO `json:"document_taxes"`
	NetTotal      decimal.Decimal `json:"net_total"`
	TaxTotal      decimal.Decimal `json:"tax_total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// TaxDecisionDTO regla decisiva para un impuesto.
type TaxDecisionDTO struct {
	TaxID      string `json:"tax_id"`
	TaxCode    string `json:"tax_code"`
	RuleID     string `json:"rule_id"`
	Apply      bool   `json:"apply"`
	TaxEnabled bool   `json:"tax_enabled"`
	Applied    bool   `json:"applied"`
}

// LineDecisionsDTO decisiones de una línea.
type LineDecisionsDTO struct {
	LineID     string           `json:"line_id"`
	LineNumber int              `json:"line_number"`
	Decisions  []TaxDecisionDTO `json:"decisions"`
}

// TaxExplanationResponse diagnóstico de la resolución de impuestos.
type TaxExplanationResponse struct {
	DocumentID string             `json:"document_id"`
	Document   []TaxDecisionDTO   `json:"document"`
	Lines      []LineDecisionsDTO `json:"lines"`
}
