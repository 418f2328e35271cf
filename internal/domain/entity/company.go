package entity

import "time"

// Company representa la empresa dueña de los libros contables (tenant del sistema).
type Company struct {
	ID        string
	Name      string
	NIT       string // NIT colombiano (con o sin dígito de verificación)
	Address   string
	Phone     string
	Email     string
	Currency  string // moneda funcional, ej. COP
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Estados de empresa.
const (
	CompanyStatusActive   = "active"
	CompanyStatusInactive = "inactive"
)
