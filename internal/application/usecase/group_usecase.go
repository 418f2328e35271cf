package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// GroupUseCase casos de uso de grupos de terceros e ítems.
type GroupUseCase struct {
	groups   repository.GroupRepository
	entities repository.BusinessEntityRepository
	items    repository.ItemRepository
}

// NewGroupUseCase construye el caso de uso.
func NewGroupUseCase(groups repository.GroupRepository, entities repository.BusinessEntityRepository, items repository.ItemRepository) *GroupUseCase {
	return &GroupUseCase{groups: groups, entities: entities, items: items}
}

// Create crea un grupo. El código es único por empresa.
func (uc *GroupUseCase) Create(companyID string, in dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	kind := entity.GroupKind(in.Kind)
	if in.Code == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: code y name son obligatorios", domain.ErrInvalidInput)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: kind inválido %q", domain.ErrInvalidInput, in.Kind)
	}
	existing, err := uc.groups.GetByCompanyAndCode(companyID, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	g := &entity.Group{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Code:      in.Code,
		Name:      in.Name,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.groups.Create(g); err != nil {
		return nil, err
	}
	return toGroupResponse(g), nil
}

// List lista los grupos de la empresa; kind vacío = todos.
func (uc *GroupUseCase) List(companyID, kind string) ([]dto.GroupResponse, error) {
	if kind != "" && !entity.GroupKind(kind).Valid() {
		return nil, fmt.Errorf("%w: kind inválido %q", domain.ErrInvalidInput, kind)
	}
	list, err := uc.groups.ListByCompany(companyID, entity.GroupKind(kind))
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(g *entity.Group, _ int) dto.GroupResponse { return *toGroupResponse(g) }), nil
}

// AddMember agrega un tercero o ítem al grupo según el tipo del grupo.
func (uc *GroupUseCase) AddMember(companyID, groupID string, in dto.AddGroupMemberRequest) (*dto.GroupMemberResponse, error) {
	g, err := uc.get(companyID, groupID)
	if err != nil {
		return nil, err
	}
	if in.MemberID == "" {
		return nil, fmt.Errorf("%w: member_id es obligatorio", domain.ErrInvalidInput)
	}
	if err := uc.checkMember(companyID, g.Kind, in.MemberID); err != nil {
		return nil, err
	}
	m := &entity.GroupMembership{
		ID:        uuid.New().String(),
		GroupID:   g.ID,
		MemberID:  in.MemberID,
		Kind:      g.Kind,
		CreatedAt: time.Now(),
	}
	if err := uc.groups.AddMember(m); err != nil {
		return nil, err
	}
	return toGroupMemberResponse(m), nil
}

// RemoveMember quita un miembro del grupo.
func (uc *GroupUseCase) RemoveMember(companyID, groupID, memberID string) error {
	if _, err := uc.get(companyID, groupID); err != nil {
		return err
	}
	return uc.groups.RemoveMember(groupID, memberID)
}

// ListMembers lista los miembros de un grupo.
func (uc *GroupUseCase) ListMembers(companyID, groupID string) ([]dto.GroupMemberResponse, error) {
	if _, err := uc.get(companyID, groupID); err != nil {
		return nil, err
	}
	list, err := uc.groups.ListMembers(groupID)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(m *entity.GroupMembership, _ int) dto.GroupMemberResponse { return *toGroupMemberResponse(m) }), nil
}

func (uc *GroupUseCase) get(companyID, id string) (*entity.Group, error) {
	g, err := uc.groups.GetByID(id)
	if err != nil {
		return nil, err
	}
	if g == nil || g.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

func (uc *GroupUseCase) checkMember(companyID string, kind entity.GroupKind, memberID string) error {
	var owner string
	switch kind {
	case entity.GroupKindBusinessEntity:
		be, err := uc.entities.GetByID(memberID)
		if err != nil {
			return err
		}
		if be != nil {
			owner = be.CompanyID
		}
	case entity.GroupKindItem:
		it, err := uc.items.GetByID(memberID)
		if err != nil {
			return err
		}
		if it != nil {
			owner = it.CompanyID
		}
	}
	if owner == "" || owner != companyID {
		return fmt.Errorf("%w: miembro %s no existe como %s", domain.ErrInvalidInput, memberID, kind)
	}
	return nil
}

func toGroupResponse(g *entity.Group) *dto.GroupResponse {
	return &dto.GroupResponse{ID: g.ID, Code: g.Code, Name: g.Name, Kind: string(g.Kind), CreatedAt: g.CreatedAt}
}

func toGroupMemberResponse(m *entity.GroupMembership) *dto.GroupMemberResponse {
	return &dto.GroupMemberResponse{ID: m.ID, GroupID: m.GroupID, MemberID: m.MemberID, Kind: string(m.Kind), CreatedAt: m.CreatedAt}
}
