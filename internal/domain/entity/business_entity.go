package entity

import "time"

// Tipos de tercero.
const (
	BusinessEntityCustomer = "customer"
	BusinessEntitySupplier = "supplier"
	BusinessEntityBoth     = "both"
)

// BusinessEntity representa un tercero (cliente o proveedor) de la empresa.
type BusinessEntity struct {
	ID        string
	CompanyID string
	Code      string // único por empresa
	Name      string
	TaxID     string // NIT o Cédula
	Kind      string // customer, supplier, both
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
