package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBusinessEntityRequest entrada para crear un tercero.
type CreateBusinessEntityRequest struct {
	Code  string `json:"code" validate:"required,max=30"`
	Name  string `json:"name" validate:"required,max=200"`
	TaxID string `json:"tax_id"`
	Kind  string `json:"kind" validate:"omitempty,oneof=customer supplier both"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// UpdateBusinessEntityRequest entrada para actualizar un tercero (campos opcionales).
type UpdateBusinessEntityRequest struct {
	Name  *string `json:"name"`
	TaxID *string `json:"tax_id"`
	Kind  *string `json:"kind"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// BusinessEntityResponse salida de un tercero.
type BusinessEntityResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Kind      string    `json:"kind"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateItemRequest entrada para crear un ítem.
type CreateItemRequest struct {
	Code        string          `json:"code" validate:"required,max=50"`
	Name        string          `json:"name" validate:"required,max=200"`
	Price       decimal.Decimal `json:"price"`
	UnitMeasure string          `json:"unit_measure"`
}

// UpdateItemRequest entrada para actualizar un ítem (campos opcionales).
type UpdateItemRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	UnitMeasure *string          `json:"unit_measure"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	UnitMeasure string          `json:"unit_measure"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
