package repository

import "github.com/jhoicas/Contable-api/internal/domain/entity"

// GroupRepository define el puerto de persistencia para grupos y sus membresías.
type GroupRepository interface {
	Create(group *entity.Group) error
	GetByID(id string) (*entity.Group, error)
	GetByCompanyAndCode(companyID, code string) (*entity.Group, error)
	// ListByCompany lista los grupos de la empresa; kind vacío = todos.
	ListByCompany(companyID string, kind entity.GroupKind) ([]*entity.Group, error)

	AddMember(m *entity.GroupMembership) error
	RemoveMember(groupID, memberID string) error
	ListMembers(groupID string) ([]*entity.GroupMembership, error)
	// ListMembershipsByCompany devuelve todas las membresías de los grupos de la empresa
	// (snapshot que consume el evaluador de impuestos).
	ListMembershipsByCompany(companyID string) ([]*entity.GroupMembership, error)
}
