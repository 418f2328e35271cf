package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTaxRequest entrada para crear un impuesto del catálogo.
type CreateTaxRequest struct {
	Code            string          `json:"code" validate:"required,max=30"`
	Name            string          `json:"name" validate:"required,max=200"`
	Kind            string          `json:"kind" validate:"required,oneof=percentage fixed_amount amount_per_unit"`
	Level           string          `json:"level" validate:"required,oneof=line document"`
	Amount          decimal.Decimal `json:"amount"`
	Percentage      decimal.Decimal `json:"percentage"`
	Enabled         *bool           `json:"enabled"` // nil = true
	IncludedInPrice bool            `json:"included_in_price"`
}

// UpdateTaxRequest entrada para actualizar un impuesto (campos opcionales).
type UpdateTaxRequest struct {
	Name            *string          `json:"name"`
	Kind            *string          `json:"kind"`
	Level           *string          `json:"level"`
	Amount          *decimal.Decimal `json:"amount"`
	Percentage      *decimal.Decimal `json:"percentage"`
	Enabled         *bool            `json:"enabled"`
	IncludedInPrice *bool            `json:"included_in_price"`
}

// TaxResponse salida de un impuesto.
type TaxResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Kind            string          `json:"kind"`
	Level           string          `json:"level"`
	Amount          decimal.Decimal `json:"amount"`
	Percentage      decimal.Decimal `json:"percentage"`
	Enabled         bool            `json:"enabled"`
	IncludedInPrice bool            `json:"included_in_price"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateTaxRuleRequest entrada para crear una regla. Los filtros vacíos significan "cualquiera".
type CreateTaxRuleRequest struct {
	TaxID                 string `json:"tax_id" validate:"required"`
	OperationCode         string `json:"operation_code"`
	BusinessEntityGroupID string `json:"business_entity_group_id"`
	ItemGroupID           string `json:"item_group_id"`
	Priority              int    `json:"priority" validate:"min=0"`
	Enabled               *bool  `json:"enabled"` // nil = true
	Description           string `json:"description"`
}

// UpdateTaxRuleRequest entrada para actualizar una regla (campos opcionales).
type UpdateTaxRuleRequest struct {
	OperationCode         *string `json:"operation_code"`
	BusinessEntityGroupID *string `json:"business_entity_group_id"`
	ItemGroupID           *string `json:"item_group_id"`
	Priority              *int    `json:"priority"`
	Enabled               *bool   `json:"enabled"`
	Description           *string `json:"description"`
}

// TaxRuleResponse salida de una regla.
type TaxRuleResponse struct {
	ID                    string    `json:"id"`
	TaxID                 string    `json:"tax_id"`
	OperationCode         string    `json:"operation_code"`
	BusinessEntityGroupID string    `json:"business_entity_group_id"`
	ItemGroupID           string    `json:"item_group_id"`
	Priority              int       `json:"priority"`
	Enabled               bool      `json:"enabled"`
	Description           string    `json:"description"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// CreateGroupRequest entrada para crear un grupo.
type CreateGroupRequest struct {
	Code string `json:"code" validate:"required,max=30"`
	Name string `json:"name" validate:"required,max=200"`
	Kind string `json:"kind" validate:"required,oneof=business_entity item"`
}

// GroupResponse salida de un grupo.
type GroupResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// AddGroupMemberRequest entrada para agregar un tercero o ítem al grupo.
type AddGroupMemberRequest struct {
	MemberID string `json:"member_id" validate:"required"`
}

// GroupMemberResponse salida de una membresía.
type GroupMemberResponse struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	MemberID  string    `json:"member_id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
