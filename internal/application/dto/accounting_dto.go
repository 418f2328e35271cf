package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountRequest entrada para crear una cuenta.
type CreateAccountRequest struct {
	Code     string `json:"code" validate:"required,max=20"`
	Name     string `json:"name" validate:"required,max=200"`
	Type     string `json:"type" validate:"required,oneof=asset liability equity income expense"`
	ParentID string `json:"parent_id"`
}

// UpdateAccountRequest entrada para actualizar una cuenta (campos opcionales).
type UpdateAccountRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

// AccountResponse salida de una cuenta.
type AccountResponse struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateFiscalPeriodRequest entrada para abrir un periodo contable.
type CreateFiscalPeriodRequest struct {
	Name      string    `json:"name" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// FiscalPeriodResponse salida de un periodo.
type FiscalPeriodResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
}

// PostTransactionRequest entrada para registrar un comprobante.
type PostTransactionRequest struct {
	PeriodID    string               `json:"period_id" validate:"required"`
	Date        time.Time            `json:"date" validate:"required"`
	Reference   string               `json:"reference"`
	Description string               `json:"description"`
	DocumentID  string               `json:"document_id"`
	Entries     []LedgerEntryRequest `json:"entries" validate:"required,min=2,dive"`
}

// LedgerEntryRequest movimiento: debit o credit (exactamente uno mayor que cero).
type LedgerEntryRequest struct {
	AccountID string          `json:"account_id" validate:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo"`
}

// LedgerEntryResponse salida de un movimiento.
type LedgerEntryResponse struct {
	ID         string          `json:"id"`
	LineNumber int             `json:"line_number"`
	AccountID  string          `json:"account_id"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	Memo       string          `json:"memo"`
}

// LedgerTransactionResponse salida de un comprobante.
type LedgerTransactionResponse struct {
	ID          string                `json:"id"`
	PeriodID    string                `json:"period_id"`
	Date        time.Time             `json:"date"`
	Reference   string                `json:"reference"`
	Description string                `json:"description"`
	DocumentID  string                `json:"document_id,omitempty"`
	Entries     []LedgerEntryResponse `json:"entries"`
	TotalDebit  decimal.Decimal       `json:"total_debit"`
	TotalCredit decimal.Decimal       `json:"total_credit"`
	CreatedAt   time.Time             `json:"created_at"`
}

// TrialBalanceLine saldo de una cuenta en el balance de prueba.
// Balance es positivo en la naturaleza de la cuenta (débito para activos y gastos).
type TrialBalanceLine struct {
	AccountID   string          `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Type        string          `json:"type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse balance de prueba de un periodo.
type TrialBalanceResponse struct {
	PeriodID    string             `json:"period_id"`
	PeriodName  string             `json:"period_name"`
	Lines       []TrialBalanceLine `json:"lines"`
	TotalDebit  decimal.Decimal    `json:"total_debit"`
	TotalCredit decimal.Decimal    `json:"total_credit"`
}
