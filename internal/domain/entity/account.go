package entity

import "time"

// AccountType clase de cuenta del plan de cuentas.
type AccountType string

// Clases de cuenta (PUC simplificado).
const (
	AccountAsset     AccountType = "asset"
	AccountLiability AccountType = "liability"
	AccountEquity    AccountType = "equity"
	AccountIncome    AccountType = "income"
	AccountExpense   AccountType = "expense"
)

// Valid indica si la clase de cuenta es conocida.
func (t AccountType) Valid() bool {
	switch t {
	case AccountAsset, AccountLiability, AccountEquity, AccountIncome, AccountExpense:
		return true
	}
	return false
}

// DebitNature indica si la cuenta es de naturaleza débito (activos y gastos).
func (t AccountType) DebitNature() bool {
	return t == AccountAsset || t == AccountExpense
}

// Account representa una cuenta del plan de cuentas (jerárquica opcional).
type Account struct {
	ID        string
	CompanyID string
	ParentID  string // vacío si es raíz
	Code      string // único por empresa, ej. 240801
	Name      string
	Type      AccountType
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
