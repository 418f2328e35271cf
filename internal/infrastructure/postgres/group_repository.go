package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.GroupRepository = (*GroupRepo)(nil)

// GroupRepo implementación de GroupRepository (usable con pool o tx).
type GroupRepo struct {
	q Querier
}

// NewGroupRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGroupRepository(q Querier) *GroupRepo {
	return &GroupRepo{q: q}
}

const groupColumns = `id, company_id, code, name, kind, created_at, updated_at`

// Create persiste un grupo.
func (r *GroupRepo) Create(g *entity.Group) error {
	query := `INSERT INTO tax_groups (` + groupColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		g.ID, g.CompanyID, g.Code, g.Name, string(g.Kind), g.CreatedAt, g.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

// GetByID obtiene un grupo por ID.
func (r *GroupRepo) GetByID(id string) (*entity.Group, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(`SELECT `+groupColumns+` FROM tax_groups WHERE id = $1`, id)
}

// GetByCompanyAndCode obtiene un grupo por empresa y código.
func (r *GroupRepo) GetByCompanyAndCode(companyID, code string) (*entity.Group, error) {
	return r.getOne(`SELECT `+groupColumns+` FROM tax_groups WHERE company_id = $1 AND code = $2`, companyID, code)
}

func (r *GroupRepo) getOne(query string, args ...any) (*entity.Group, error) {
	var g entity.Group
	var kind string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&g.ID, &g.CompanyID, &g.Code, &g.Name, &kind, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	g.Kind = entity.GroupKind(kind)
	return &g, nil
}

// ListByCompany lista los grupos de la empresa; kind vacío = todos.
func (r *GroupRepo) ListByCompany(companyID string, kind entity.GroupKind) ([]*entity.Group, error) {
	query := `
		SELECT ` + groupColumns + ` FROM tax_groups
		WHERE company_id = $1 AND ($2 = '' OR kind = $2)
		ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, companyID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()
	var list []*entity.Group
	for rows.Next() {
		var g entity.Group
		var k string
		if err := rows.Scan(&g.ID, &g.CompanyID, &g.Code, &g.Name, &k, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		g.Kind = entity.GroupKind(k)
		list = append(list, &g)
	}
	return list, rows.Err()
}

// AddMember agrega un miembro al grupo. Miembro repetido -> domain.ErrDuplicate.
func (r *GroupRepo) AddMember(m *entity.GroupMembership) error {
	query := `
		INSERT INTO group_memberships (id, group_id, member_id, kind, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, m.ID, m.GroupID, m.MemberID, string(m.Kind), m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert group membership: %w", err)
	}
	return nil
}

// RemoveMember quita un miembro del grupo. Si no existía devuelve domain.ErrNotFound.
func (r *GroupRepo) RemoveMember(groupID, memberID string) error {
	if !isUUID(memberID) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM group_memberships WHERE group_id = $1 AND member_id = $2`, groupID, memberID)
	if err != nil {
		return fmt.Errorf("delete group membership: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListMembers devuelve los miembros de un grupo.
func (r *GroupRepo) ListMembers(groupID string) ([]*entity.GroupMembership, error) {
	return r.listMemberships(`
		SELECT id, group_id, member_id, kind, created_at
		FROM group_memberships WHERE group_id = $1 ORDER BY created_at, id`, groupID)
}

// ListMembershipsByCompany devuelve todas las membresías de los grupos de la empresa.
func (r *GroupRepo) ListMembershipsByCompany(companyID string) ([]*entity.GroupMembership, error) {
	return r.listMemberships(`
		SELECT m.id, m.group_id, m.member_id, m.kind, m.created_at
		FROM group_memberships m
		JOIN tax_groups g ON g.id = m.group_id
		WHERE g.company_id = $1
		ORDER BY m.created_at, m.id`, companyID)
}

func (r *GroupRepo) listMemberships(query, arg string) ([]*entity.GroupMembership, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list group memberships: %w", err)
	}
	defer rows.Close()
	var list []*entity.GroupMembership
	for rows.Next() {
		var m entity.GroupMembership
		var kind string
		if err := rows.Scan(&m.ID, &m.GroupID, &m.MemberID, &kind, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan group membership: %w", err)
		}
		m.Kind = entity.GroupKind(kind)
		list = append(list, &m)
	}
	return list, rows.Err()
}
