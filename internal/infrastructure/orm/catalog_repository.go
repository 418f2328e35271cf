package orm

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository        = (*CompanyRepo)(nil)
	_ repository.BusinessEntityRepository = (*BusinessEntityRepo)(nil)
	_ repository.ItemRepository           = (*ItemRepo)(nil)
)

// CompanyRepo implementación gorm de CompanyRepository.
type CompanyRepo struct {
	db *gorm.DB
}

// NewCompanyRepository construye el repositorio sobre db (o una tx de gorm).
func NewCompanyRepository(db *gorm.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(c *entity.Company) error {
	if err := r.db.Create(companyFromEntity(c)).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.first("id = ?", id)
}

// GetByNIT obtiene una empresa por NIT.
func (r *CompanyRepo) GetByNIT(nit string) (*entity.Company, error) {
	return r.first("nit = ?", nit)
}

func (r *CompanyRepo) first(cond string, arg any) (*entity.Company, error) {
	var m companyModel
	if err := r.db.Where(cond, arg).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return m.toEntity(), nil
}

// Update actualiza una empresa existente.
func (r *CompanyRepo) Update(c *entity.Company) error {
	if err := r.db.Save(companyFromEntity(c)).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// List devuelve empresas con paginación.
func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	var rows []companyModel
	if err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	list := make([]*entity.Company, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}

// BusinessEntityRepo implementación gorm de BusinessEntityRepository.
type BusinessEntityRepo struct {
	db *gorm.DB
}

// NewBusinessEntityRepository construye el repositorio sobre db (o una tx de gorm).
func NewBusinessEntityRepository(db *gorm.DB) *BusinessEntityRepo {
	return &BusinessEntityRepo{db: db}
}

// Create persiste un nuevo tercero.
func (r *BusinessEntityRepo) Create(b *entity.BusinessEntity) error {
	if err := r.db.Create(businessEntityFromEntity(b)).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business entity: %w", err)
	}
	return nil
}

// GetByID obtiene un tercero por ID.
func (r *BusinessEntityRepo) GetByID(id string) (*entity.BusinessEntity, error) {
	return r.first(r.db.Where("id = ?", id))
}

// GetByCompanyAndCode obtiene un tercero por empresa y código.
func (r *BusinessEntityRepo) GetByCompanyAndCode(companyID, code string) (*entity.BusinessEntity, error) {
	return r.first(r.db.Where("company_id = ? AND code = ?", companyID, code))
}

func (r *BusinessEntityRepo) first(q *gorm.DB) (*entity.BusinessEntity, error) {
	var m businessEntityModel
	if err := q.First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business entity: %w", err)
	}
	return m.toEntity(), nil
}

// ListByCompany lista terceros de la empresa con paginación.
func (r *BusinessEntityRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.BusinessEntity, error) {
	var rows []businessEntityModel
	err := r.db.Where("company_id = ?", companyID).Order("name").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list business entities: %w", err)
	}
	list := make([]*entity.BusinessEntity, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}

// Update actualiza un tercero.
func (r *BusinessEntityRepo) Update(b *entity.BusinessEntity) error {
	if err := r.db.Save(businessEntityFromEntity(b)).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update business entity: %w", err)
	}
	return nil
}

// ItemRepo implementación gorm de ItemRepository.
type ItemRepo struct {
	db *gorm.DB
}

// NewItemRepository construye el repositorio sobre db (o una tx de gorm).
func NewItemRepository(db *gorm.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// Create persiste un ítem.
func (r *ItemRepo) Create(i *entity.Item) error {
	if err := r.db.Create(itemFromEntity(i)).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.first(r.db.Where("id = ?", id))
}

// GetByCompanyAndCode obtiene un ítem por empresa y código.
func (r *ItemRepo) GetByCompanyAndCode(companyID, code string) (*entity.Item, error) {
	return r.first(r.db.Where("company_id = ? AND code = ?", companyID, code))
}

func (r *ItemRepo) first(q *gorm.DB) (*entity.Item, error) {
	var m itemModel
	if err := q.First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return m.toEntity(), nil
}

// ListByCompany lista ítems con paginación.
func (r *ItemRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Item, error) {
	var rows []itemModel
	if err := r.db.Where("company_id = ?", companyID).Order("code").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	list := make([]*entity.Item, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}

// Update actualiza un ítem.
func (r *ItemRepo) Update(i *entity.Item) error {
	if err := r.db.Save(itemFromEntity(i)).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}
