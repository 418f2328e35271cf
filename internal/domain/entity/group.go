package entity

import "time"

// GroupKind tipo de miembros que admite un grupo.
type GroupKind string

// Tipos de grupo.
const (
	GroupKindBusinessEntity GroupKind = "business_entity"
	GroupKindItem           GroupKind = "item"
)

// Valid indica si el tipo de grupo es conocido.
func (k GroupKind) Valid() bool {
	return k == GroupKindBusinessEntity || k == GroupKindItem
}

// Group agrupa terceros o ítems para focalizar reglas de impuestos
// (ej. "Grandes contribuyentes", "Bienes exentos").
type Group struct {
	ID        string
	CompanyID string
	Code      string // único por empresa
	Name      string
	Kind      GroupKind
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GroupMembership asocia un tercero o ítem (MemberID) a un grupo.
type GroupMembership struct {
	ID        string
	GroupID   string
	MemberID  string
	Kind      GroupKind
	CreatedAt time.Time
}
