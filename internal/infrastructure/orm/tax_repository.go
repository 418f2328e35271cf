package orm

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var (
	_ repository.TaxRepository     = (*TaxRepo)(nil)
	_ repository.TaxRuleRepository = (*TaxRuleRepo)(nil)
	_ repository.GroupRepository   = (*GroupRepo)(nil)
)

// TaxRepo implementación gorm de TaxRepository.
type TaxRepo struct {
	db *gorm.DB
}

// NewTaxRepository construye el repositorio sobre db (o una tx de gorm).
func NewTaxRepository(db *gorm.DB) *TaxRepo {
	return &TaxRepo{db: db}
}

// Create persiste un impuesto del catálogo.
func (r *TaxRepo) Create(t *entity.Tax) error {
	if err := r.db.Create(taxFromEntity(t)).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tax: %w", err)
	}
	return nil
}

// GetByID obtiene un impuesto por ID.
func (r *TaxRepo) GetByID(id string) (*entity.Tax, error) {
	return r.first(r.db.Where("id = ?", id))
}

// GetByCompanyAndCode obtiene un impuesto por empresa y código.
func (r *TaxRepo) GetByCompanyAndCode(companyID, code string) (*entity.Tax, error) {
	return r.first(r.db.Where("company_id = ? AND code = ?", companyID, code))
}

func (r *TaxRepo) first(q *gorm.DB) (*entity.Tax, error) {
	var m taxModel
	if err := q.First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax: %w", err)
	}
	return m.toEntity(), nil
}

// ListByCompany devuelve el catálogo de la empresa ordenado por código.
func (r *TaxRepo) ListByCompany(companyID string) ([]*entity.Tax, error) {
	var rows []taxModel
	if err := r.db.Where("company_id = ?", companyID).Order("code").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list taxes: %w", err)
	}
	list := make([]*entity.Tax, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}

// Update actualiza un impuesto.
func (r *TaxRepo) Update(t *entity.Tax) error {
	if err := r.db.Save(taxFromEntity(t)).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update tax: %w", err)
	}
	return nil
}

// TaxRuleRepo implementación gorm de TaxRuleRepository.
type TaxRuleRepo struct {
	db *gorm.DB
}

// NewTaxRuleRepository construye el repositorio sobre db (o una tx de gorm).
func NewTaxRuleRepository(db *gorm.DB) *TaxRuleRepo {
	return &TaxRuleRepo{db: db}
}

// Create persiste una regla de impuesto.
func (r *TaxRuleRepo) Create(rule *entity.TaxRule) error {
	if err := r.db.Create(taxRuleFromEntity(rule)).Error; err != nil {
		return fmt.Errorf("insert tax rule: %w", err)
	}
	return nil
}

// GetByID obtiene una regla por ID.
func (r *TaxRuleRepo) GetByID(id string) (*entity.TaxRule, error) {
	var m taxRuleModel
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax rule: %w", err)
	}
	return m.toEntity(), nil
}

// ListByCompany devuelve las reglas ordenadas por prioridad (estable por fecha de creación).
func (r *TaxRuleRepo) ListByCompany(companyID string) ([]*entity.TaxRule, error) {
	return r.list(r.db.Where("company_id = ?", companyID))
}

// ListByTax devuelve las reglas asociadas a un impuesto.
func (r *TaxRuleRepo) ListByTax(taxID string) ([]*entity.TaxRule, error) {
	return r.list(r.db.Where("tax_id = ?", taxID))
}

func (r *TaxRuleRepo) list(q *gorm.DB) ([]*entity.TaxRule, error) {
	var rows []taxRuleModel
	if err := q.Order("priority").Order("created_at").Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list tax rules: %w", err)
	}
	list := make([]*entity.TaxRule, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}

// Update actualiza una regla.
func (r *TaxRuleRepo) Update(rule *entity.TaxRule) error {
	if err := r.db.Save(taxRuleFromEntity(rule)).Error; err != nil {
		return fmt.Errorf("update tax rule: %w", err)
	}
	return nil
}

// Delete elimina una regla por ID.
func (r *TaxRuleRepo) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&taxRuleModel{}).Error; err != nil {
		return fmt.Errorf("delete tax rule: %w", err)
	}
	return nil
}

// GroupRepo implementación gorm de GroupRepository.
type GroupRepo struct {
	db *gorm.DB
}

// NewGroupRepository construye el repositorio sobre db (o una tx de gorm).
func NewGroupRepository(db *gorm.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// Create persiste un grupo.
func (r *GroupRepo) Create(g *entity.Group) error {
	if err := r.db.Create(groupFromEntity(g)).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

// GetByID obtiene un grupo por ID.
func (r *GroupRepo) GetByID(id string) (*entity.Group, error) {
	return r.first(r.db.Where("id = ?", id))
}

// GetByCompanyAndCode obtiene un grupo por empresa y código.
func (r *GroupRepo) GetByCompanyAndCode(companyID, code string) (*entity.Group, error) {
	return r.first(r.db.Where("company_id = ? AND code = ?", companyID, code))
}

func (r *GroupRepo) first(q *gorm.DB) (*entity.Group, error) {
	var m groupModel
	if err := q.First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return m.toEntity(), nil
}

// ListByCompany lista los grupos de la empresa; kind vacío = todos.
func (r *GroupRepo) ListByCompany(companyID string, kind entity.GroupKind) ([]*entity.Group, error) {
	q := r.db.Where("company_id = ?", companyID)
	if kind != "" {
		q = q.Where("kind = ?", string(kind))
	}
	var rows []groupModel
	if err := q.Order("code").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	list := make([]*entity.Group, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}

// AddMember agrega un miembro al grupo. Miembro repetido -> domain.ErrDuplicate.
func (r *GroupRepo) AddMember(m *entity.GroupMembership) error {
	if err := r.db.Create(membershipFromEntity(m)).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert group membership: %w", err)
	}
	return nil
}

// RemoveMember quita un miembro del grupo. Si no existía devuelve domain.ErrNotFound.
func (r *GroupRepo) RemoveMember(groupID, memberID string) error {
	res := r.db.Where("group_id = ? AND member_id = ?", groupID, memberID).Delete(&groupMembershipModel{})
	if res.Error != nil {
		return fmt.Errorf("delete group membership: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListMembers devuelve los miembros de un grupo.
func (r *GroupRepo) ListMembers(groupID string) ([]*entity.GroupMembership, error) {
	return r.listMemberships(r.db.Where("group_id = ?", groupID))
}

// ListMembershipsByCompany devuelve todas las membresías de los grupos de la empresa.
func (r *GroupRepo) ListMembershipsByCompany(companyID string) ([]*entity.GroupMembership, error) {
	sub := r.db.Model(&groupModel{}).Select("id").Where("company_id = ?", companyID)
	return r.listMemberships(r.db.Where("group_id IN (?)", sub))
}

func (r *GroupRepo) listMemberships(q *gorm.DB) ([]*entity.GroupMembership, error) {
	var rows []groupMembershipModel
	if err := q.Order("created_at").Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list group memberships: %w", err)
	}
	list := make([]*entity.GroupMembership, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}
